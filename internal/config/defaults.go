package config

import (
	"time"

	"github.com/je17/promptflow/internal/llm"
)

// DefaultConfig returns a Config with sensible defaults.
// A mock provider keeps default runs offline-safe until one is configured.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Provider: llm.ProviderConfig{
			Type: llm.ProviderMock,
		},
		Evaluation: EvaluationConfig{
			Parallelism: 4,
			OutputPath:  "eval-results.jsonl",
		},
		Simulation: SimulationConfig{
			MaxTurns:     5,
			NumQueries:   5,
			APICallDelay: time.Second,
		},
	}
}

// applyDefaults fills zero-valued fields with defaults.
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
	if cfg.Provider.Type == "" {
		cfg.Provider.Type = defaults.Provider.Type
	}
	if cfg.Evaluation.Parallelism == 0 {
		cfg.Evaluation.Parallelism = defaults.Evaluation.Parallelism
	}
	if cfg.Evaluation.OutputPath == "" {
		cfg.Evaluation.OutputPath = defaults.Evaluation.OutputPath
	}
	if cfg.Simulation.MaxTurns == 0 {
		cfg.Simulation.MaxTurns = defaults.Simulation.MaxTurns
	}
	if cfg.Simulation.NumQueries == 0 {
		cfg.Simulation.NumQueries = defaults.Simulation.NumQueries
	}
	if cfg.Simulation.APICallDelay == 0 {
		cfg.Simulation.APICallDelay = defaults.Simulation.APICallDelay
	}
}
