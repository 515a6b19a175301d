package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/je17/promptflow/internal/evaluator"
	"github.com/je17/promptflow/internal/types"
)

// RowResult holds every evaluator's output for one dataset row.
type RowResult struct {
	Index  int                          `json:"index"`
	Input  evaluator.Input              `json:"input"`
	Scores map[string]float64           `json:"scores"`
	Errors map[string]string            `json:"errors,omitempty"`
	ByName map[string]*evaluator.Result `json:"-"`
}

// Summary aggregates a whole run: per-metric means over the rows that
// produced each metric, plus failure counts.
type Summary struct {
	RunID       types.RunID        `json:"run_id"`
	Rows        int                `json:"rows"`
	FailedRows  int                `json:"failed_rows"`
	MetricMeans map[string]float64 `json:"metric_means"`
	StartedAt   time.Time          `json:"started_at"`
	Duration    time.Duration      `json:"duration"`
}

// RunResult is the complete output of one evaluation run.
type RunResult struct {
	Summary Summary     `json:"summary"`
	Rows    []RowResult `json:"rows"`
}

// Runner applies a set of evaluators to every row of a dataset.
type Runner struct {
	evaluators  []evaluator.Evaluator
	parallelism int
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithParallelism bounds how many rows are evaluated concurrently.
// Values below 1 are ignored. The default is 4.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		if n >= 1 {
			r.parallelism = n
		}
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Runner over the given evaluators.
func New(evaluators []evaluator.Evaluator, opts ...Option) *Runner {
	r := &Runner{
		evaluators:  evaluators,
		parallelism: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "runner")
	return r
}

// Run evaluates every input with every evaluator. Individual evaluator
// failures are recorded per row rather than aborting the run; only context
// cancellation stops everything.
func (r *Runner) Run(ctx context.Context, inputs []evaluator.Input) (*RunResult, error) {
	if len(r.evaluators) == 0 {
		return nil, types.NewError(types.CONFIG_VALIDATION_FAILED,
			"run requires at least one evaluator")
	}

	started := time.Now()
	runID := types.NewRunID()
	r.logger.Info("starting evaluation run",
		"run_id", runID, "rows", len(inputs), "evaluators", len(r.evaluators))

	rows := make([]RowResult, len(inputs))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.parallelism)

	for i, input := range inputs {
		i, input := i, input
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			row := r.evaluateRow(groupCtx, i, input)
			mu.Lock()
			rows[i] = row
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &RunResult{
		Summary: summarize(runID, rows, started),
		Rows:    rows,
	}
	r.logger.Info("evaluation run finished",
		"run_id", runID,
		"rows", result.Summary.Rows,
		"failed_rows", result.Summary.FailedRows,
		"duration", result.Summary.Duration)
	return result, nil
}

func (r *Runner) evaluateRow(ctx context.Context, index int, input evaluator.Input) RowResult {
	row := RowResult{
		Index:  index,
		Input:  input,
		Scores: make(map[string]float64),
		ByName: make(map[string]*evaluator.Result),
	}

	for _, e := range r.evaluators {
		result, err := e.Evaluate(ctx, input)
		if err != nil {
			if row.Errors == nil {
				row.Errors = make(map[string]string)
			}
			row.Errors[e.Name()] = err.Error()
			r.logger.Warn("evaluator failed on row",
				"evaluator", e.Name(), "row", index, "error", err)
			continue
		}

		row.ByName[e.Name()] = result
		for metric, value := range result.Scores {
			row.Scores[metric] = value
		}
	}

	return row
}

func summarize(runID types.RunID, rows []RowResult, started time.Time) Summary {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	failed := 0

	for _, row := range rows {
		if len(row.Errors) > 0 {
			failed++
		}
		for metric, value := range row.Scores {
			sums[metric] += value
			counts[metric]++
		}
	}

	means := make(map[string]float64, len(sums))
	for metric, sum := range sums {
		means[metric] = sum / float64(counts[metric])
	}

	return Summary{
		RunID:       runID,
		Rows:        len(rows),
		FailedRows:  failed,
		MetricMeans: means,
		StartedAt:   started,
		Duration:    time.Since(started),
	}
}
