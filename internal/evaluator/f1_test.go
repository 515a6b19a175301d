package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/types"
)

func TestF1ScoreEvaluator(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		groundTruth string
		want        float64
	}{
		{
			name:        "exact match",
			answer:      "Paris is the capital of France",
			groundTruth: "Paris is the capital of France",
			want:        1.0,
		},
		{
			name:        "case and punctuation insensitive",
			answer:      "Paris, is THE capital of France!",
			groundTruth: "paris is the capital of france",
			want:        1.0,
		},
		{
			name:        "articles ignored",
			answer:      "the capital is Paris",
			groundTruth: "a capital is Paris",
			want:        1.0,
		},
		{
			name:        "no overlap",
			answer:      "lemon trees grow slowly",
			groundTruth: "Paris is in France",
			want:        0.0,
		},
		{
			name:        "partial overlap",
			answer:      "Paris France",
			groundTruth: "Paris Texas",
			// One shared token: precision 1/2, recall 1/2.
			want: 0.5,
		},
	}

	e := NewF1ScoreEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Evaluate(context.Background(), Input{
				Answer:      tt.answer,
				GroundTruth: tt.groundTruth,
			})
			require.NoError(t, err)
			assert.Equal(t, "f1_score", result.Evaluator)
			assert.InDelta(t, tt.want, result.Scores[MetricF1Score], 1e-9)
		})
	}
}

func TestF1ScoreEvaluatorInvalidInput(t *testing.T) {
	e := NewF1ScoreEvaluator()

	_, err := e.Evaluate(context.Background(), Input{Answer: "only an answer"})
	require.Error(t, err)
	assert.Equal(t, types.EVAL_INVALID_INPUT, types.CodeOf(err))

	_, err = e.Evaluate(context.Background(), Input{GroundTruth: "only a truth"})
	require.Error(t, err)
	assert.Equal(t, types.EVAL_INVALID_INPUT, types.CodeOf(err))
}

func TestF1ScoreSymmetricEmptyNormalization(t *testing.T) {
	// Inputs that normalize to nothing (articles and punctuation only) agree.
	result, err := NewF1ScoreEvaluator().Evaluate(context.Background(), Input{
		Answer:      "the a an...",
		GroundTruth: "the!",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Scores[MetricF1Score])
}
