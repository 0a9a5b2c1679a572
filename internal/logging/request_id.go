package logging

import "github.com/google/uuid"

// GenerateRequestID returns a random (version 4) UUID used to correlate
// the log lines of one decode.
func GenerateRequestID() string {
	return uuid.NewString()
}
