// Package commands implements the CLI commands for filebak.
package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"filebak/cmd"
	"filebak/internal/config"
	"filebak/internal/errors"
	"filebak/internal/logging"
	"filebak/internal/runner"
)

// configFlag holds the value of the --config flag.
var configFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// loadedConfig holds the configuration loaded during initialization.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"path to config file (default: ./config.yaml, ~/.config/filebak/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("filebak version {{.Version}}\n")

	// Pass manifests record the same version the CLI reports.
	runner.Version = cmd.Version

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	loadedConfig, configLoadErr = config.Load(configFlag)
}

var rootCmd = &cobra.Command{
	Use:   "filebak",
	Short: "Expression-driven scheduled file backup",
	Long: `filebak copies files matched by composable selection expressions into
timestamped backup directories, on demand or on a fixed schedule.

Sources are declared in config.yaml: each binds a root directory to a
selection rule built from name globs, size thresholds, writability checks
and the boolean combinators and, or, not and except. Every pass creates a
fresh timestamped subdirectory under the destination root and mirrors the
matched files into it.`,
	Example: `  # Write a starter configuration
  filebak init

  # Run a single backup pass
  filebak once

  # Run passes on the configured interval until interrupted
  filebak run

  # Show which files a rule would select
  filebak eval /home/u/music --name '*.mp3'`,
	PersistentPreRunE: func(cobraCmd *cobra.Command, _ []string) error {
		return setupLogging(cobraCmd)
	},
	Run: func(cobraCmd *cobra.Command, _ []string) {
		_ = cobraCmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cobraCmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		level = logging.LevelFromVerbosity(verbosity + 1)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cobraCmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cobraCmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewSystemError(err, "Check that the log file path is writable")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cobraCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cobraCmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *errors.ExitError
		if stderrors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", exitErr.Suggestion)
			}
			return exitErr.Code
		}
		return errors.ExitUser
	}
	return errors.ExitSuccess
}
