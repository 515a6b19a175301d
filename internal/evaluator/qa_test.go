package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/llm/providers"
	"github.com/je17/promptflow/internal/types"
)

func TestQAEvaluatorMergesAllMetrics(t *testing.T) {
	// All five judged metrics get the same scripted verdict; the mock
	// repeats its last response, so concurrent order does not matter.
	judge := providers.NewMockProvider([]string{`{"score": 4, "reason": "solid"}`})
	e := NewQAEvaluator(judge, "mock-model")

	result, err := e.Evaluate(context.Background(), Input{
		Question:    "What is the capital of France?",
		Answer:      "Paris is the capital of France.",
		Context:     "France's capital city is Paris.",
		GroundTruth: "Paris is the capital of France.",
	})
	require.NoError(t, err)

	assert.Equal(t, "qa", result.Evaluator)
	for _, metric := range []string{
		MetricGroundedness, MetricRelevance, MetricCoherence,
		MetricFluency, MetricSimilarity,
	} {
		assert.Equal(t, 4.0, result.Scores[metric], metric)
	}
	assert.Equal(t, 1.0, result.Scores[MetricF1Score])
	assert.Len(t, result.Scores, 6)
	assert.Equal(t, 5, judge.CallCount())
}

func TestQAEvaluatorBoundedParallelism(t *testing.T) {
	judge := providers.NewMockProvider([]string{`{"score": 2}`})
	e := NewQAEvaluator(judge, "mock-model", WithParallelism(1))

	result, err := e.Evaluate(context.Background(), Input{
		Question:    "q",
		Answer:      "a",
		Context:     "c",
		GroundTruth: "a",
	})
	require.NoError(t, err)
	assert.Len(t, result.Scores, 6)
}

func TestQAEvaluatorPropagatesChildError(t *testing.T) {
	// An empty mock makes every judged child fail.
	judge := providers.NewMockProvider(nil)
	e := NewQAEvaluator(judge, "mock-model", WithParallelism(1))

	_, err := e.Evaluate(context.Background(), Input{
		Question:    "q",
		Answer:      "a",
		Context:     "c",
		GroundTruth: "a",
	})
	require.Error(t, err)
	assert.Equal(t, types.EVAL_JUDGE_FAILED, types.CodeOf(err))
}

func TestQAEvaluatorRequiresAllFields(t *testing.T) {
	judge := providers.NewMockProvider([]string{`{"score": 4}`})
	e := NewQAEvaluator(judge, "mock-model")

	_, err := e.Evaluate(context.Background(), Input{
		Question: "q",
		Answer:   "a",
	})
	require.Error(t, err)
	assert.Equal(t, types.EVAL_INVALID_INPUT, types.CodeOf(err))
	assert.Zero(t, judge.CallCount())
}
