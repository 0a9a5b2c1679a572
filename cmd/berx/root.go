package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/berx/internal/config"
	"github.com/KilimcininKorOglu/berx/internal/dissect"
	"github.com/KilimcininKorOglu/berx/internal/logging"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	noColor    bool
}

// app carries the state built by the root command for its children.
type app struct {
	flags  globalFlags
	cfg    *config.Config
	logger logging.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "berx",
		Short: "Decode BER/ASN.1 protocol messages",
		Long: `berx decodes captured BER-encoded protocol data units into a tree.

Bundled protocols:
  ldap  LDAPv3 (1.3.6.1.1.18)
  dap   X.500 Directory Access Protocol over ROS (2.5.3.1)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "Path to configuration file (YAML or .toml)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	root.PersistentFlags().BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newDecodeCmd(a),
		newProtocolsCmd(a),
		newTypesCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and creates the logger.
func (a *app) setup() error {
	if a.flags.noColor {
		pterm.DisableColor()
	}

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
	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errs[0])
	}

	a.cfg = cfg
	a.logger = logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	return nil
}

func (a *app) dissector() (*dissect.Dissector, error) {
	return dissect.New(a.cfg, dissect.Builtin(), dissect.WithLogger(a.logger))
}
