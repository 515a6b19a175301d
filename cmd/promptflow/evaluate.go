package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/je17/promptflow/internal/evaluator"
	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/runner"
)

var (
	evaluateData        string
	evaluateNames       []string
	evaluateOutput      string
	evaluateModel       string
	evaluateParallelism int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a JSONL dataset with one or more evaluators",
	Long: `Evaluate reads a JSONL dataset of question/answer rows, applies the
selected evaluators to every row, and writes per-row scores plus a
run summary as JSONL.

Available evaluators: f1, groundedness, relevance, coherence,
fluency, similarity, qa (all of the above).

Examples:
  # Full QA battery over a dataset
  promptflow evaluate --data rows.jsonl

  # Only the deterministic F1 metric
  promptflow evaluate --data rows.jsonl --evaluators f1

  # Judge with a specific model, 8 rows at a time
  promptflow evaluate --data rows.jsonl --model gpt-4-turbo --parallelism 8`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateData, "data", "", "Path to JSONL dataset (required)")
	evaluateCmd.Flags().StringSliceVar(&evaluateNames, "evaluators", []string{"qa"}, "Evaluators to run")
	evaluateCmd.Flags().StringVar(&evaluateOutput, "output", "", "Output JSONL path (default from config)")
	evaluateCmd.Flags().StringVar(&evaluateModel, "model", "", "Judge model (default from config)")
	evaluateCmd.Flags().IntVar(&evaluateParallelism, "parallelism", 0, "Concurrent rows (default from config)")
	evaluateCmd.MarkFlagRequired("data")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	provider, err := activeProvider()
	if err != nil {
		return err
	}

	model := evaluateModel
	if model == "" {
		model = cfg.Evaluation.Model
	}
	if model == "" {
		model = cfg.Provider.DefaultModel
	}

	evals, err := buildEvaluators(evaluateNames, provider, model)
	if err != nil {
		return err
	}

	inputs, err := runner.ReadDataset(evaluateData)
	if err != nil {
		return err
	}

	parallelism := evaluateParallelism
	if parallelism == 0 {
		parallelism = cfg.Evaluation.Parallelism
	}

	r := runner.New(evals, runner.WithParallelism(parallelism))
	result, err := r.Run(ctx, inputs)
	if err != nil {
		return err
	}

	output := evaluateOutput
	if output == "" {
		output = cfg.Evaluation.OutputPath
	}
	if err := runner.ExportJSONL(output, result); err != nil {
		return err
	}

	printSummary(result, output)
	return nil
}

// buildEvaluators maps evaluator names to instances. "qa" expands to the
// full battery and cannot be combined with individual names.
func buildEvaluators(names []string, provider llm.Provider, model string) ([]evaluator.Evaluator, error) {
	evals := make([]evaluator.Evaluator, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "qa":
			if len(names) > 1 {
				return nil, fmt.Errorf("evaluator %q already includes every metric; do not combine it with others", name)
			}
			evals = append(evals, evaluator.NewQAEvaluator(provider, model))
		case "f1":
			evals = append(evals, evaluator.NewF1ScoreEvaluator())
		case "groundedness":
			evals = append(evals, evaluator.NewGroundednessEvaluator(provider, model))
		case "relevance":
			evals = append(evals, evaluator.NewRelevanceEvaluator(provider, model))
		case "coherence":
			evals = append(evals, evaluator.NewCoherenceEvaluator(provider, model))
		case "fluency":
			evals = append(evals, evaluator.NewFluencyEvaluator(provider, model))
		case "similarity":
			evals = append(evals, evaluator.NewSimilarityEvaluator(provider, model))
		default:
			return nil, fmt.Errorf("unknown evaluator: %q", name)
		}
	}
	return evals, nil
}

func printSummary(result *runner.RunResult, output string) {
	s := result.Summary

	fmt.Printf("Run %s: %d rows (%d failed) in %s\n", s.RunID, s.Rows, s.FailedRows, s.Duration.Round(time.Millisecond))

	metrics := make([]string, 0, len(s.MetricMeans))
	for metric := range s.MetricMeans {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN")
	for _, metric := range metrics {
		fmt.Fprintf(w, "%s\t%.4f\n", metric, s.MetricMeans[metric])
	}
	w.Flush()

	fmt.Printf("Results written to %s\n", output)
}
