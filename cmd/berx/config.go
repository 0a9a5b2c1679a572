package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KilimcininKorOglu/berx/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
		// Validation is reported by the subcommands themselves.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if a.flags.noColor {
				pterm.DisableColor()
			}
			return nil
		},
	}
	cmd.AddCommand(newConfigValidateCmd(a), newConfigInitCmd(), newConfigShowCmd(a))
	return cmd
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.flags.configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.LoadConfig(a.flags.configPath)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			errs := config.ValidateConfig(cfg)
			if len(errs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
				return nil
			}

			w := cmd.ErrOrStderr()
			fmt.Fprintln(w, "Configuration errors:")
			for _, e := range errs {
				fmt.Fprintf(w, "  - %s\n", e)
			}
			return fmt.Errorf("%d configuration errors", len(errs))
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeConfig(cmd.OutOrStdout(), config.DefaultConfig(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml|toml|json")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultConfig()
			if a.flags.configPath != "" {
				loaded, err := config.LoadConfig(a.flags.configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			if a.flags.logLevel != "" {
				cfg.Logging.Level = a.flags.logLevel
			}
			return writeConfig(cmd.OutOrStdout(), cfg, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml|toml|json")
	return cmd
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
