package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdfalchemy-go"
	"github.com/geoknoesis/rdfalchemy-go/compat"
	"github.com/geoknoesis/rdfalchemy-go/config"
	"github.com/geoknoesis/rdfalchemy-go/internal/logging"
)

// runLog carries log output of the current command run to the library logger.
var runLog = logging.NewSwitch(nil)

// app holds the state shared by every command once flags are parsed.
type app struct {
	configPath   string
	flagDialect  string
	flagEncoding string
	flagLogLevel string

	cfg     *config.Config
	logger  *slog.Logger
	dialect compat.Dialect
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "RDF helpers and the rdfalchemy compatibility shim",
		Long: `rdfalchemy converts text to bytes, rewrites literal markers in doctest
output for a target dialect, orders mixed values by type name and converts
RDF between N-Triples, N-Quads and JSON-LD.

Settings are read from ~/.config/rdfalchemy/config.yaml, then rdfalchemy.yaml
in the current or a parent directory, then --config. Flags win over files.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&a.flagDialect, "dialect", "", "Literal dialect (modern, legacy)")
	flags.StringVar(&a.flagEncoding, "encoding", "", "Text encoding for byte conversion")
	flags.StringVar(&a.flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		a.encodeCmd(),
		a.doctestCmd(),
		a.sortCmd(),
		a.convertCmd(),
		a.reprCmd(),
		versionCmd(),
	)
	return cmd
}

// setup loads the layered configuration, applies flag overrides and
// initializes logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	bootstrap := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logging.ParseLevel(a.flagLogLevel),
	}))
	if a.flagLogLevel == "" {
		bootstrap = logging.Discard()
	}

	cfg, err := config.NewLoader(bootstrap).Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Dialect = a.flagDialect
	}
	if flags.Changed("encoding") {
		cfg.Encoding = a.flagEncoding
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})
	runLog.Set(handler)

	a.cfg = cfg
	a.logger = rdfalchemy.InitLogging(runLog)
	a.dialect = cfg.DialectValue()
	a.logger.Debug("configuration ready",
		slog.String("dialect", a.dialect.String()),
		slog.String("encoding", cfg.Encoding))
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, rdfalchemy.Version)
		},
	}
}
