package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/botplot/internal/app"
	"github.com/five82/botplot/internal/config"
	"github.com/five82/botplot/internal/logging"
)

type rootFlags struct {
	configPath  string
	file        string
	telemetry   string
	noUpdate    bool
	noAutoscale bool
	interval    time.Duration
	logFile     string
	logLevel    string
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithFlags(&rootFlags{})
}

func newRootCommandWithFlags(flags *rootFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "botplot",
		Short: "Live terminal charts for bot record and telemetry logs",
		Long: `botplot tails a record file of numeric samples and/or a telemetry file of
grouped stream blocks, and redraws live charts on a fixed cadence.

Pass "-" as a path to read that input from stdin.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger, closeLog, err := logging.New(logging.Options{
				Level:       cfg.LogLevel,
				Format:      cfg.LogFormat,
				OutputPaths: []string{cfg.LogPath},
			})
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			defer func() { _ = closeLog() }()
			logStart(logger, cfg, flags)

			return app.Run(cmd.Context(), app.Options{
				Config:      cfg,
				NoUpdate:    flags.noUpdate,
				NoAutoscale: flags.noAutoscale,
				Stdin:       stdinFile(cmd),
				Logger:      logger,
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.file, "file", "f", "", `Record file of numeric samples ("-" for stdin, "" to disable)`)
	pf.StringVarP(&flags.telemetry, "telemetry", "t", "", `Telemetry file of grouped stream blocks ("-" for stdin)`)
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path (default ~/.config/botplot/config.toml)")
	pf.StringVar(&flags.logFile, "log-file", "", "Log file path")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.Flags().BoolVarP(&flags.noUpdate, "no-update", "n", false, "Draw the current data once and stop polling")
	rootCmd.Flags().BoolVarP(&flags.noAutoscale, "no-autoscale", "a", false, "Show the full history instead of the newest window")
	rootCmd.Flags().DurationVar(&flags.interval, "interval", 0, "Refresh interval (default 3s)")

	rootCmd.AddCommand(newSummaryCommand(flags))

	return rootCmd
}

// resolveConfig loads the config file and applies command line overrides.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("file") {
		cfg.RecordPath = config.ExpandSource(flags.file)
	}
	if changed("telemetry") {
		cfg.TelemetryPath = config.ExpandSource(flags.telemetry)
		// Telemetry alone on the command line means telemetry only.
		if !changed("file") {
			cfg.RecordPath = ""
		}
	}
	if changed("interval") {
		if flags.interval <= 0 {
			return config.Config{}, errors.New("--interval must be positive")
		}
		cfg.RefreshInterval = flags.interval
	}
	if changed("log-file") && flags.logFile != "" {
		cfg.LogPath = config.ExpandSource(flags.logFile)
	}
	if changed("log-level") && flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, nil
}

// stdinFile returns the command's input when it is a file descriptor.
func stdinFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return f
	}
	return os.Stdin
}

func logStart(logger *slog.Logger, cfg config.Config, flags *rootFlags) {
	logger.Info("botplot starting",
		"record", cfg.RecordPath,
		"telemetry", cfg.TelemetryPath,
		"interval", cfg.RefreshInterval,
		"window", cfg.VisibleWindow,
		"no_update", flags.noUpdate,
		"no_autoscale", flags.noAutoscale,
	)
}
