// Package config provides configuration loading and validation for berx.
//
// # Overview
//
// Configuration is read from YAML or TOML files. It supports:
//
//   - YAML (default) and TOML (files ending in .toml)
//   - Environment variable substitution
//   - Default values for all settings
//   - Configuration validation
//
// # Configuration Structure
//
//	type Config struct {
//	    Logging   LogConfig       // Logging settings
//	    Decoder   DecoderConfig   // Depth limit and trailing data policy
//	    Metrics   MetricsConfig   // Prometheus metrics
//	    Protocols ProtocolsConfig // Protocol modules to register
//	}
//
// # Loading Configuration
//
//	cfg, err := config.LoadConfig("/etc/berx/berx.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
//	    for _, err := range errs {
//	        log.Println(err)
//	    }
//	}
//
// # YAML Format
//
//	logging:
//	  level: debug
//	  format: json
//	  output: /var/log/berx/berx.log
//
//	decoder:
//	  maxDepth: 128
//	  trailingData: strict
//
//	metrics:
//	  enabled: true
//	  namespace: berx
//
//	protocols:
//	  enabled: [ldap]
//
// # Environment Variables
//
// Values may reference environment variables:
//
//	logging:
//	  level: ${BERX_LOG_LEVEL:-info}
//	  output: ${BERX_LOG_FILE}
//
// ${VAR} is replaced with the variable's value (empty if unset) and
// ${VAR:-default} falls back to default when the variable is unset or empty.
package config
