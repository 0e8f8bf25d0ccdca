package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fitcrm/fitcrm/internal/client"
	"github.com/fitcrm/fitcrm/internal/config"
	"github.com/fitcrm/fitcrm/internal/events"
)

var rootCmd = &cobra.Command{
	Use:   "fitcrm",
	Short: "Client relationship tracker for fitness coaching",
	Long: `FitCRM keeps a coach's client records in local storage: register
clients, list and search them, view a profile with training history and
exercise suggestions, edit and delete records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			_ = app.Close()
		}
	},
}

var (
	cfgPath   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *events.Logger
	app    *client.Client
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Config file path (default: fitcrm.json in standard locations)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Log format: text, json")
}

func setup() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err = events.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}

	app, err = client.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
