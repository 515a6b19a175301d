package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/llm/providers"
	"github.com/je17/promptflow/internal/types"
)

func TestGroundednessEvaluator(t *testing.T) {
	judge := providers.NewMockProvider([]string{
		`{"score": 5, "reason": "every claim is in the context"}`,
	})
	e := NewGroundednessEvaluator(judge, "mock-model")

	result, err := e.Evaluate(context.Background(), Input{
		Answer:  "The Eiffel Tower is in Paris.",
		Context: "The Eiffel Tower stands on the Champ de Mars in Paris, France.",
	})
	require.NoError(t, err)

	assert.Equal(t, "groundedness", result.Evaluator)
	assert.Equal(t, 5.0, result.Scores[MetricGroundedness])
	assert.Equal(t, "every claim is in the context", result.Reason)

	calls := judge.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Request.Messages, 2)
	assert.Equal(t, llm.RoleSystem, calls[0].Request.Messages[0].Role)
	assert.Contains(t, calls[0].Request.Messages[1].Content, "CONTEXT:")
	assert.Contains(t, calls[0].Request.Messages[1].Content, "ANSWER:")
	assert.Zero(t, calls[0].Request.Temperature)
}

func TestPromptedEvaluatorMarkdownWrappedVerdict(t *testing.T) {
	judge := providers.NewMockProvider([]string{
		"Here is my rating:\n```json\n{\"score\": 3, \"reason\": \"partially supported\"}\n```",
	})
	e := NewGroundednessEvaluator(judge, "mock-model")

	result, err := e.Evaluate(context.Background(), Input{
		Answer:  "a",
		Context: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Scores[MetricGroundedness])
}

func TestPromptedEvaluatorBareRatingFallback(t *testing.T) {
	judge := providers.NewMockProvider([]string{"4"})
	e := NewFluencyEvaluator(judge, "mock-model")

	result, err := e.Evaluate(context.Background(), Input{
		Question: "How do magnets work?",
		Answer:   "Via magnetic fields generated by moving charges.",
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, result.Scores[MetricFluency])
}

func TestPromptedEvaluatorBadJudgeOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "prose without a rating", response: "this is excellent work"},
		{name: "score out of range", response: `{"score": 9}`},
		{name: "wrong type", response: `{"score": "five"}`},
		{name: "unexpected fields", response: `{"score": 4, "extra": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			judge := providers.NewMockProvider([]string{tt.response})
			e := NewCoherenceEvaluator(judge, "mock-model")

			_, err := e.Evaluate(context.Background(), Input{
				Question: "q",
				Answer:   "a",
			})
			require.Error(t, err)
			assert.Equal(t, types.EVAL_BAD_JUDGE_OUTPUT, types.CodeOf(err))
		})
	}
}

func TestPromptedEvaluatorJudgeFailure(t *testing.T) {
	judge := providers.NewMockProvider(nil) // no scripted responses
	e := NewRelevanceEvaluator(judge, "mock-model")

	_, err := e.Evaluate(context.Background(), Input{
		Question: "q",
		Answer:   "a",
		Context:  "c",
	})
	require.Error(t, err)
	assert.Equal(t, types.EVAL_JUDGE_FAILED, types.CodeOf(err))
}

func TestPromptedEvaluatorInputValidation(t *testing.T) {
	judge := providers.NewMockProvider([]string{`{"score": 5}`})

	_, err := NewGroundednessEvaluator(judge, "m").Evaluate(context.Background(), Input{
		Answer: "no context supplied",
	})
	require.Error(t, err)
	assert.Equal(t, types.EVAL_INVALID_INPUT, types.CodeOf(err))
	assert.Zero(t, judge.CallCount(), "invalid input must not reach the judge")

	_, err = NewSimilarityEvaluator(judge, "m").Evaluate(context.Background(), Input{
		Question: "q",
		Answer:   "a",
	})
	require.Error(t, err)
	assert.Equal(t, types.EVAL_INVALID_INPUT, types.CodeOf(err))
}
