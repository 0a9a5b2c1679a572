package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Logging: LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Decoder: DecoderConfig{
			MaxDepth:     64,
			TrailingData: TrailingWarn,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "berx",
		},
		Protocols: ProtocolsConfig{
			Enabled: []string{"ldap", "dap"},
		},
	}
}
