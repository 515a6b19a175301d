package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/je17/promptflow/internal/config"
)

// Global flags shared by every subcommand.
var (
	configFile string
	verbose    bool
)

// cfg is populated by loadConfig before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "promptflow",
	Short: "Promptflow - LLM answer evaluation and conversation simulation",
	Long: `Promptflow evaluates LLM-generated answers against reference data and
simulates synthetic conversations against a target system.

Evaluation combines deterministic metrics (token-overlap F1) with
LLM-judged quality ratings (groundedness, relevance, coherence,
fluency, similarity) produced by a configured judge model.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig runs before every command: it loads configuration (falling back
// to defaults when no file exists) and installs the process logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = os.Getenv("PROMPTFLOW_CONFIG")
	}
	if path == "" {
		path = "promptflow.yaml"
	}

	loaded, err := config.NewConfigLoader(config.NewValidator()).LoadWithDefaults(path)
	if err != nil {
		return err
	}
	cfg = loaded

	slog.SetDefault(newLogger(cfg.Logging))
	return nil
}

// newLogger builds a slog.Logger from the logging configuration.
// The --verbose flag overrides the configured level with debug.
func newLogger(lc config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default promptflow.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(providersCmd)
}
