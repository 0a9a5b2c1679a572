// Package config provides configuration loading and validation for berx.
package config

// Config holds the complete berx configuration.
type Config struct {
	Logging   LogConfig       `yaml:"logging" toml:"logging" json:"logging"`
	Decoder   DecoderConfig   `yaml:"decoder" toml:"decoder" json:"decoder"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics" json:"metrics"`
	Protocols ProtocolsConfig `yaml:"protocols" toml:"protocols" json:"protocols"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
	Output string `yaml:"output" toml:"output" json:"output"`

	// Rotation settings apply when Output is a file path.
	MaxSizeMB  int  `yaml:"maxSizeMB" toml:"maxSizeMB" json:"maxSizeMB"`
	MaxBackups int  `yaml:"maxBackups" toml:"maxBackups" json:"maxBackups"`
	MaxAgeDays int  `yaml:"maxAgeDays" toml:"maxAgeDays" json:"maxAgeDays"`
	Compress   bool `yaml:"compress" toml:"compress" json:"compress"`
}

// Trailing data policies.
const (
	TrailingWarn   = "warn"
	TrailingStrict = "strict"
)

// DecoderConfig holds decode limits and policies.
type DecoderConfig struct {
	MaxDepth int `yaml:"maxDepth" toml:"maxDepth" json:"maxDepth"`
	// TrailingData is "warn" (keep leftovers as extensions) or "strict".
	TrailingData string `yaml:"trailingData" toml:"trailingData" json:"trailingData"`
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" toml:"namespace" json:"namespace"`
}

// ProtocolsConfig selects the protocol modules to register.
type ProtocolsConfig struct {
	Enabled []string `yaml:"enabled" toml:"enabled" json:"enabled"`
}

// ProtocolEnabled reports whether the named protocol is enabled.
func (c *Config) ProtocolEnabled(name string) bool {
	for _, p := range c.Protocols.Enabled {
		if p == name {
			return true
		}
	}
	return false
}
