package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/simulator"
)

var (
	simulateTurnsFile  string
	simulateText       string
	simulateTextFile   string
	simulateNumQueries int
	simulateMaxTurns   int
	simulateTasks      []string
	simulateOutput     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate synthetic conversations against the configured provider",
	Long: `Simulate produces synthetic user/assistant conversations and writes one
JSON line per conversation.

Two modes are available. With --turns-file, scripted user turns are
replayed verbatim. With --text or --text-file, queries are generated
from the seed document and a judge model plays the user side for up
to --max-turns exchanges.

The configured LLM provider answers as the target system.

Examples:
  # Replay scripted turns
  promptflow simulate --turns-file turns.json --output conv.jsonl

  # Generate 3 conversations from a document
  promptflow simulate --text-file doc.txt --num-queries 3 --output conv.jsonl`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateTurnsFile, "turns-file", "", "JSON file of scripted user turns ([][]string)")
	simulateCmd.Flags().StringVar(&simulateText, "text", "", "Seed text for query generation")
	simulateCmd.Flags().StringVar(&simulateTextFile, "text-file", "", "File containing seed text")
	simulateCmd.Flags().IntVar(&simulateNumQueries, "num-queries", 0, "Queries to generate (default from config)")
	simulateCmd.Flags().IntVar(&simulateMaxTurns, "max-turns", 0, "Max exchanges per conversation (default from config)")
	simulateCmd.Flags().StringSliceVar(&simulateTasks, "tasks", nil, "Task descriptions driving generated conversations")
	simulateCmd.Flags().StringVar(&simulateOutput, "output", "simulation.jsonl", "Output JSONL path")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	provider, err := activeProvider()
	if err != nil {
		return err
	}

	model := cfg.Evaluation.Model
	if model == "" {
		model = cfg.Provider.DefaultModel
	}

	sim, err := simulator.NewSimulator(cfg.Simulation.Project, provider, model, slog.Default())
	if err != nil {
		return err
	}

	opts := simulator.Options{
		Target:       providerTarget(provider, model),
		Text:         simulateText,
		NumQueries:   simulateNumQueries,
		MaxTurns:     simulateMaxTurns,
		Tasks:        simulateTasks,
		APICallDelay: cfg.Simulation.APICallDelay,
	}
	if opts.NumQueries == 0 {
		opts.NumQueries = cfg.Simulation.NumQueries
	}
	if opts.MaxTurns == 0 {
		opts.MaxTurns = cfg.Simulation.MaxTurns
	}

	if simulateTurnsFile != "" {
		turns, err := readTurnsFile(simulateTurnsFile)
		if err != nil {
			return err
		}
		opts.ConversationTurns = turns
	}
	if simulateTextFile != "" {
		data, err := os.ReadFile(simulateTextFile)
		if err != nil {
			return fmt.Errorf("failed to read seed text: %w", err)
		}
		opts.Text = string(data)
	}

	lines, err := sim.Run(ctx, opts)
	if err != nil {
		return err
	}

	if err := simulator.ExportJSONL(simulateOutput, lines); err != nil {
		return err
	}

	fmt.Printf("Wrote %d conversations to %s\n", len(lines), simulateOutput)
	return nil
}

// providerTarget answers each conversation with the configured provider,
// standing in for the system under evaluation.
func providerTarget(provider llm.Provider, model string) simulator.Target {
	return func(ctx context.Context, history *simulator.ConversationHistory) (string, error) {
		resp, err := provider.Complete(ctx, llm.CompletionRequest{
			Model:    model,
			Messages: history.Messages(),
		})
		if err != nil {
			return "", err
		}
		return resp.Content, nil
	}
}

// readTurnsFile reads scripted user turns from a JSON or YAML file,
// chosen by extension.
func readTurnsFile(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read turns file: %w", err)
	}

	var turns [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &turns); err != nil {
			return nil, fmt.Errorf("failed to parse turns file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &turns); err != nil {
			return nil, fmt.Errorf("failed to parse turns file: %w", err)
		}
	}
	return turns, nil
}
