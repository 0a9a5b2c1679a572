// Package logging provides structured logging for berx.
//
// # Overview
//
// Logger is a small key-value interface backed by zerolog. It supports:
//
//   - Multiple log levels (debug, info, warn, error)
//   - Text and JSON output formats
//   - Request IDs that tie the lines of one decode together
//   - Field-based contextual logging
//
// # Creating a Logger
//
// Create a logger with configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:      "info",
//	    Format:     "json",
//	    Output:     "/var/log/berx/berx.log",
//	    MaxSizeMB:  100,
//	    MaxBackups: 5,
//	})
//
// Or use defaults:
//
//	logger := logging.NewDefault() // Info level, text format, stdout
//
// For testing, use a no-op logger:
//
//	logger := logging.NewNop()
//
// # Structured Logging
//
// Add key-value pairs to log entries:
//
//	logger.Debug("decoded",
//	    "protocol", "ldap",
//	    "consumed", 42,
//	    "anomalies", 0,
//	)
//
// Output (JSON format):
//
//	{"level":"debug","protocol":"ldap","consumed":42,"anomalies":0,"time":"2026-02-18T10:30:00Z","message":"decoded"}
//
// Text output goes through zerolog's console writer:
//
//	2026-02-18T10:30:00Z DBG decoded anomalies=0 consumed=42 protocol=ldap
//
// # Request ID Tracking
//
//	requestID := logging.GenerateRequestID()
//	reqLogger := logger.WithRequestID(requestID)
//
// # Output Destinations
//
//	logging.Config{Output: "stdout"}            // Standard output
//	logging.Config{Output: "stderr"}            // Standard error
//	logging.Config{Output: "/var/log/berx.log"} // Rotating file
package logging
