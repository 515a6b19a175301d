package simulator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/llm/providers"
	"github.com/je17/promptflow/internal/types"
)

func testScope() ProjectScope {
	return ProjectScope{
		SubscriptionID: "sub-1",
		ResourceGroup:  "rg-1",
		ProjectName:    "proj-1",
	}
}

func echoTarget(ctx context.Context, history *ConversationHistory) (string, error) {
	last := history.Turns[history.Len()-1]
	return "echo: " + last.Content, nil
}

func TestProjectScopeValidation(t *testing.T) {
	scopes := []ProjectScope{
		{},
		{SubscriptionID: "s"},
		{SubscriptionID: "s", ResourceGroup: "rg"},
		{ResourceGroup: "rg", ProjectName: "p"},
	}
	for _, scope := range scopes {
		_, err := NewSimulator(scope, providers.NewMockProvider(nil), "m", nil)
		require.Error(t, err)
		assert.Equal(t, types.SIM_INVALID_PROJECT, types.CodeOf(err))
	}

	_, err := NewSimulator(testScope(), nil, "m", nil)
	require.Error(t, err)
	assert.Equal(t, types.LLM_INVALID_INPUT, types.CodeOf(err))
}

func TestRunScriptedConversations(t *testing.T) {
	sim, err := NewSimulator(testScope(), providers.NewMockProvider(nil), "m", nil)
	require.NoError(t, err)

	lines, err := sim.Run(context.Background(), Options{
		Target: echoTarget,
		ConversationTurns: [][]string{
			{"hello", "how are you"},
			{"one turn only"},
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	first := lines[0]
	require.Len(t, first.Messages, 4)
	assert.Equal(t, llm.RoleUser, first.Messages[0].Role)
	assert.Equal(t, "hello", first.Messages[0].Content)
	assert.Equal(t, llm.RoleAssistant, first.Messages[1].Role)
	assert.Equal(t, "echo: hello", first.Messages[1].Content)
	assert.Equal(t, "echo: how are you", first.Messages[3].Content)
	assert.Equal(t, "scripted", first.Metadata["mode"])
	assert.Positive(t, first.TokenCount)

	require.Len(t, lines[1].Messages, 2)
}

func TestRunGeneratedConversations(t *testing.T) {
	judge := providers.NewMockProvider([]string{
		`[{"q": "What is promptflow?", "r": "An evaluation toolkit."}, {"q": "Who uses it?", "r": "Evaluation teams."}]`,
		"Tell me more.",
	})
	sim, err := NewSimulator(testScope(), judge, "m", nil)
	require.NoError(t, err)

	var targetCalls int
	target := func(ctx context.Context, history *ConversationHistory) (string, error) {
		targetCalls++
		return fmt.Sprintf("answer %d", targetCalls), nil
	}

	lines, err := sim.Run(context.Background(), Options{
		Target:     target,
		Text:       "promptflow is an evaluation toolkit used by evaluation teams.",
		NumQueries: 2,
		MaxTurns:   2,
		Tasks:      []string{"learn the basics"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Each conversation: seed user turn, answer, simulated follow-up, answer.
	for _, line := range lines {
		require.Len(t, line.Messages, 4)
		assert.Equal(t, llm.RoleUser, line.Messages[0].Role)
		assert.Equal(t, llm.RoleUser, line.Messages[2].Role)
		assert.Equal(t, "Tell me more.", line.Messages[2].Content)
		assert.Equal(t, "generated", line.Metadata["mode"])
	}
	assert.Equal(t, "What is promptflow?", lines[0].Messages[0].Content)
	assert.Equal(t, "learn the basics", lines[0].Metadata["task"])
	assert.Equal(t, "", lines[1].Metadata["task"])
	assert.Equal(t, 4, targetCalls)
}

func TestRunOptionValidation(t *testing.T) {
	sim, err := NewSimulator(testScope(), providers.NewMockProvider(nil), "m", nil)
	require.NoError(t, err)

	_, err = sim.Run(context.Background(), Options{
		ConversationTurns: [][]string{{"hi"}},
	})
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))

	_, err = sim.Run(context.Background(), Options{Target: echoTarget})
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))
}

func TestRunTargetFailurePropagates(t *testing.T) {
	sim, err := NewSimulator(testScope(), providers.NewMockProvider(nil), "m", nil)
	require.NoError(t, err)

	boom := errors.New("target is down")
	_, err = sim.Run(context.Background(), Options{
		Target: func(ctx context.Context, history *ConversationHistory) (string, error) {
			return "", boom
		},
		ConversationTurns: [][]string{{"hi"}},
	})
	require.Error(t, err)
	assert.Equal(t, types.SIM_TARGET_FAILED, types.CodeOf(err))
	assert.ErrorIs(t, err, boom)
}

func TestRunHonorsCancellation(t *testing.T) {
	sim, err := NewSimulator(testScope(), providers.NewMockProvider(nil), "m", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = sim.Run(ctx, Options{
		Target:            echoTarget,
		ConversationTurns: [][]string{{"a", "b"}},
		APICallDelay:      time.Minute,
	})
	require.ErrorIs(t, err, context.Canceled)
}
