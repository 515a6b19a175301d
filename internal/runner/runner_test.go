package runner

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/evaluator"
	"github.com/je17/promptflow/internal/types"
)

// scriptedEvaluator implements evaluator.Evaluator for testing. It returns a
// fixed score and can be told to fail on specific answers.
type scriptedEvaluator struct {
	name   string
	metric string
	score  float64
	failOn string
	calls  atomic.Int32
}

func (s *scriptedEvaluator) Name() string {
	return s.name
}

func (s *scriptedEvaluator) Evaluate(ctx context.Context, input evaluator.Input) (*evaluator.Result, error) {
	s.calls.Add(1)
	if s.failOn != "" && input.Answer == s.failOn {
		return nil, fmt.Errorf("scripted failure for %q", input.Answer)
	}
	return &evaluator.Result{
		Evaluator: s.name,
		Scores:    map[string]float64{s.metric: s.score},
	}, nil
}

func TestRunnerAggregatesMetrics(t *testing.T) {
	f1 := &scriptedEvaluator{name: "f1_score", metric: "f1_score", score: 0.5}
	fluency := &scriptedEvaluator{name: "fluency", metric: "gpt_fluency", score: 4}

	r := New([]evaluator.Evaluator{f1, fluency}, WithParallelism(2))

	inputs := []evaluator.Input{
		{Answer: "a1", GroundTruth: "g1"},
		{Answer: "a2", GroundTruth: "g2"},
		{Answer: "a3", GroundTruth: "g3"},
	}

	result, err := r.Run(context.Background(), inputs)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.Rows)
	assert.Zero(t, result.Summary.FailedRows)
	assert.False(t, result.Summary.RunID.IsZero())
	assert.InDelta(t, 0.5, result.Summary.MetricMeans["f1_score"], 1e-9)
	assert.InDelta(t, 4.0, result.Summary.MetricMeans["gpt_fluency"], 1e-9)

	require.Len(t, result.Rows, 3)
	for i, row := range result.Rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, 0.5, row.Scores["f1_score"])
	}
	assert.Equal(t, int32(3), f1.calls.Load())
}

func TestRunnerRecordsRowFailures(t *testing.T) {
	flaky := &scriptedEvaluator{name: "flaky", metric: "m", score: 1, failOn: "bad"}
	steady := &scriptedEvaluator{name: "steady", metric: "n", score: 2}

	r := New([]evaluator.Evaluator{flaky, steady}, WithParallelism(1))

	result, err := r.Run(context.Background(), []evaluator.Input{
		{Answer: "good"},
		{Answer: "bad"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.FailedRows)

	badRow := result.Rows[1]
	assert.Contains(t, badRow.Errors, "flaky")
	_, hasFlakyMetric := badRow.Scores["m"]
	assert.False(t, hasFlakyMetric)
	assert.Equal(t, 2.0, badRow.Scores["n"], "other evaluators still run")

	// The failed row contributes nothing to that metric's mean.
	assert.InDelta(t, 1.0, result.Summary.MetricMeans["m"], 1e-9)
	assert.InDelta(t, 2.0, result.Summary.MetricMeans["n"], 1e-9)
}

func TestRunnerRequiresEvaluators(t *testing.T) {
	r := New(nil)

	_, err := r.Run(context.Background(), []evaluator.Input{{Answer: "a"}})
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))
}

func TestRunnerEmptyDataset(t *testing.T) {
	r := New([]evaluator.Evaluator{&scriptedEvaluator{name: "e", metric: "m", score: 1}})

	result, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Summary.Rows)
	assert.Empty(t, result.Summary.MetricMeans)
}
