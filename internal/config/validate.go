package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxDecodeDepth caps decoder.maxDepth.
const maxDecodeDepth = 4096

var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error
	errs = append(errs, validateLogConfig(&config.Logging)...)
	errs = append(errs, validateDecoderConfig(&config.Decoder)...)
	errs = append(errs, validateMetricsConfig(&config.Metrics)...)
	errs = append(errs, validateProtocolsConfig(&config.Protocols)...)
	return errs
}

func validateLogConfig(config *LogConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if config.Level != "" && !validLevels[strings.ToLower(config.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be debug, info, warn, or error",
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if config.Format != "" && !validFormats[strings.ToLower(config.Format)] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be text or json",
		})
	}

	if config.Output != "" && config.Output != "stdout" && config.Output != "stderr" {
		dir := filepath.Dir(config.Output)
		if !filepath.IsAbs(config.Output) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: "must be stdout, stderr, or an absolute file path",
			})
		} else if _, err := os.Stat(dir); os.IsNotExist(err) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: fmt.Sprintf("directory %s does not exist", dir),
			})
		}
	}

	for field, v := range map[string]int{
		"logging.maxSizeMB":  config.MaxSizeMB,
		"logging.maxBackups": config.MaxBackups,
		"logging.maxAgeDays": config.MaxAgeDays,
	} {
		if v < 0 {
			errs = append(errs, ValidationError{Field: field, Message: "must not be negative"})
		}
	}

	return errs
}

func validateDecoderConfig(config *DecoderConfig) []error {
	var errs []error

	if config.MaxDepth < 1 || config.MaxDepth > maxDecodeDepth {
		errs = append(errs, ValidationError{
			Field:   "decoder.maxDepth",
			Message: fmt.Sprintf("must be between 1 and %d", maxDecodeDepth),
		})
	}

	switch config.TrailingData {
	case TrailingWarn, TrailingStrict:
	default:
		errs = append(errs, ValidationError{
			Field:   "decoder.trailingData",
			Message: "must be warn or strict",
		})
	}

	return errs
}

func validateMetricsConfig(config *MetricsConfig) []error {
	if !config.Enabled {
		return nil
	}
	if !metricNamePattern.MatchString(config.Namespace) {
		return []error{ValidationError{
			Field:   "metrics.namespace",
			Message: "must be a valid Prometheus metric name prefix",
		}}
	}
	return nil
}

func validateProtocolsConfig(config *ProtocolsConfig) []error {
	var errs []error

	if len(config.Enabled) == 0 {
		errs = append(errs, ValidationError{
			Field:   "protocols.enabled",
			Message: "at least one protocol must be enabled",
		})
	}

	seen := make(map[string]bool, len(config.Enabled))
	for i, name := range config.Enabled {
		field := fmt.Sprintf("protocols.enabled[%d]", i)
		switch {
		case strings.TrimSpace(name) == "":
			errs = append(errs, ValidationError{Field: field, Message: "protocol name is required"})
		case seen[name]:
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("duplicate protocol %q", name)})
		}
		seen[name] = true
	}

	return errs
}
