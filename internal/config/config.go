package config

import (
	"time"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/simulator"
)

// Config is the root configuration for promptflow.
type Config struct {
	Logging    LoggingConfig      `mapstructure:"logging" yaml:"logging"`
	Provider   llm.ProviderConfig `mapstructure:"provider" yaml:"provider" validate:"required"`
	Evaluation EvaluationConfig   `mapstructure:"evaluation" yaml:"evaluation"`
	Simulation SimulationConfig   `mapstructure:"simulation" yaml:"simulation,omitempty"`
}

// LoggingConfig controls structured logging output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// EvaluationConfig controls evaluation runs.
type EvaluationConfig struct {
	// Model names the judge model used by LLM-rated evaluators.
	Model string `mapstructure:"model" yaml:"model"`

	// Parallelism bounds how many dataset rows evaluate concurrently.
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism" validate:"omitempty,min=1,max=64"`

	// OutputPath is where JSONL results are written.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

// SimulationConfig controls synthetic conversation generation.
type SimulationConfig struct {
	Project      simulator.ProjectScope `mapstructure:"project" yaml:"project"`
	MaxTurns     int                    `mapstructure:"max_turns" yaml:"max_turns" validate:"omitempty,min=1,max=50"`
	NumQueries   int                    `mapstructure:"num_queries" yaml:"num_queries" validate:"omitempty,min=1,max=100"`
	APICallDelay time.Duration          `mapstructure:"api_call_delay" yaml:"api_call_delay"`
}
