package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/types"
)

// ProjectScope identifies the project a simulation run belongs to.
// All fields are required.
type ProjectScope struct {
	SubscriptionID string `json:"subscription_id" yaml:"subscription_id" mapstructure:"subscription_id"`
	ResourceGroup  string `json:"resource_group_name" yaml:"resource_group_name" mapstructure:"resource_group_name"`
	ProjectName    string `json:"project_name" yaml:"project_name" mapstructure:"project_name"`
}

// Validate checks that every scope field is present and non-empty.
func (s ProjectScope) Validate() error {
	fields := map[string]string{
		"subscription_id":     s.SubscriptionID,
		"resource_group_name": s.ResourceGroup,
		"project_name":        s.ProjectName,
	}
	for name, value := range fields {
		if value == "" {
			return types.NewError(types.SIM_INVALID_PROJECT,
				fmt.Sprintf("project scope must include a non-empty %s", name))
		}
	}
	return nil
}

// Target is the system under evaluation: given the conversation so far, it
// produces the next assistant reply.
type Target func(ctx context.Context, history *ConversationHistory) (string, error)

// Options controls a simulation run.
type Options struct {
	// Target is the callable under evaluation. Required.
	Target Target

	// ConversationTurns holds scripted user turns, one inner slice per
	// conversation. When non-empty, scripted mode is used and no queries
	// are generated.
	ConversationTurns [][]string

	// Text is the seed document queries are generated from in query mode.
	Text string

	// NumQueries is how many query/response pairs to generate from Text.
	// Defaults to 5.
	NumQueries int

	// MaxTurns caps the user/assistant exchange count per conversation.
	// Defaults to 5.
	MaxTurns int

	// Tasks optionally names the tasks driving each generated conversation;
	// recorded in the output metadata.
	Tasks []string

	// APICallDelay is the pause between successive model and target calls.
	APICallDelay time.Duration
}

func (o *Options) validate() error {
	if o.Target == nil {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"simulation requires a target")
	}
	if len(o.ConversationTurns) == 0 && o.Text == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"simulation requires either conversation turns or seed text")
	}
	if o.NumQueries <= 0 {
		o.NumQueries = 5
	}
	if o.MaxTurns <= 0 {
		o.MaxTurns = 5
	}
	return nil
}

// Simulator generates synthetic conversations against a target callable,
// either by replaying scripted user turns or by generating queries from seed
// text with a judge model and then simulating the user side.
type Simulator struct {
	scope    ProjectScope
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

// NewSimulator creates a Simulator for the given project scope.
// Returns SIM_INVALID_PROJECT if the scope is incomplete.
func NewSimulator(scope ProjectScope, provider llm.Provider, model string, logger *slog.Logger) (*Simulator, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, types.NewError(types.LLM_INVALID_INPUT, "simulator requires a provider")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		scope:    scope,
		provider: provider,
		model:    model,
		logger:   logger.With("component", "simulator", "project", scope.ProjectName),
	}, nil
}

// Run executes the simulation and returns one JSONLine per conversation.
// Scripted conversation turns take precedence over query generation.
func (s *Simulator) Run(ctx context.Context, opts Options) ([]JSONLine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if len(opts.ConversationTurns) > 0 {
		return s.runScripted(ctx, opts)
	}
	return s.runGenerated(ctx, opts)
}

// runScripted plays each scripted list of user turns against the target.
func (s *Simulator) runScripted(ctx context.Context, opts Options) ([]JSONLine, error) {
	lines := make([]JSONLine, 0, len(opts.ConversationTurns))

	for i, userTurns := range opts.ConversationTurns {
		history := &ConversationHistory{}

		for _, content := range userTurns {
			history.Add(llm.RoleUser, content)

			reply, err := s.callTarget(ctx, opts.Target, history)
			if err != nil {
				return nil, err
			}
			history.Add(llm.RoleAssistant, reply)

			if err := sleep(ctx, opts.APICallDelay); err != nil {
				return nil, err
			}
		}

		s.logger.Debug("scripted conversation finished",
			"conversation", i, "turns", history.Len())
		lines = append(lines, JSONLine{
			Messages:   history.Turns,
			TokenCount: countTokens(history.Turns),
			Metadata:   map[string]any{"mode": "scripted", "conversation_index": i},
		})
	}

	return lines, nil
}

// runGenerated derives query/response pairs from the seed text, then drives a
// multi-turn conversation per query with a simulated user.
func (s *Simulator) runGenerated(ctx context.Context, opts Options) ([]JSONLine, error) {
	pairs, err := s.generateQueries(ctx, opts.Text, opts.NumQueries)
	if err != nil {
		return nil, err
	}

	lines := make([]JSONLine, 0, len(pairs))
	for i, pair := range pairs {
		task := ""
		if i < len(opts.Tasks) {
			task = opts.Tasks[i]
		}

		history := &ConversationHistory{}
		history.Add(llm.RoleUser, pair.Query)

		for turn := 0; turn < opts.MaxTurns; turn++ {
			reply, err := s.callTarget(ctx, opts.Target, history)
			if err != nil {
				return nil, err
			}
			history.Add(llm.RoleAssistant, reply)

			if turn == opts.MaxTurns-1 {
				break
			}
			if err := sleep(ctx, opts.APICallDelay); err != nil {
				return nil, err
			}

			followUp, err := s.simulateUserTurn(ctx, task, history)
			if err != nil {
				return nil, err
			}
			history.Add(llm.RoleUser, followUp)

			if err := sleep(ctx, opts.APICallDelay); err != nil {
				return nil, err
			}
		}

		s.logger.Debug("generated conversation finished",
			"conversation", i, "turns", history.Len())
		lines = append(lines, JSONLine{
			Messages:   history.Turns,
			TokenCount: countTokens(history.Turns),
			Metadata: map[string]any{
				"mode":              "generated",
				"task":              task,
				"seed_query":        pair.Query,
				"expected_response": pair.Response,
			},
		})
	}

	return lines, nil
}

// queryPair is one generated query with the response the seed text supports.
type queryPair struct {
	Query    string `json:"q"`
	Response string `json:"r"`
}

const queryGenSystemPrompt = `You generate question/answer pairs from a document. ` +
	`Given a TEXT, produce exactly the requested number of distinct questions a reader ` +
	`might ask about it, each with the answer the text supports. ` +
	`Respond with a JSON array of objects {"q": "<question>", "r": "<answer>"} and nothing else.`

func (s *Simulator) generateQueries(ctx context.Context, text string, n int) ([]queryPair, error) {
	req := llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(queryGenSystemPrompt),
			llm.NewUserMessage(fmt.Sprintf("Generate %d pairs.\nTEXT: %s", n, text)),
		},
	}

	resp, err := s.provider.Complete(ctx, req)
	if err != nil {
		return nil, types.WrapError(types.LLM_REQUEST_FAILED, "query generation failed", err)
	}

	jsonStr, err := llm.ExtractJSON(resp.Content)
	if err != nil {
		return nil, types.WrapError(types.LLM_REQUEST_FAILED,
			"query generation returned no JSON", err)
	}

	var pairs []queryPair
	if err := json.Unmarshal([]byte(jsonStr), &pairs); err != nil {
		return nil, types.WrapError(types.LLM_REQUEST_FAILED,
			"query generation returned malformed pairs", err)
	}
	if len(pairs) > n {
		pairs = pairs[:n]
	}

	s.logger.Info("generated queries", "requested", n, "produced", len(pairs))
	return pairs, nil
}

const userSimSystemPrompt = `You simulate the user side of a conversation with an assistant. ` +
	`Given the conversation so far and an optional task, write the user's next message: ` +
	`a natural follow-up that pushes the conversation toward completing the task. ` +
	`Respond with the message text only.`

func (s *Simulator) simulateUserTurn(ctx context.Context, task string, history *ConversationHistory) (string, error) {
	messages := []llm.Message{llm.NewSystemMessage(userSimSystemPrompt)}
	if task != "" {
		messages = append(messages, llm.NewUserMessage(fmt.Sprintf("TASK: %s", task)))
	}
	messages = append(messages, history.Messages()...)

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", types.WrapError(types.LLM_REQUEST_FAILED, "user simulation failed", err)
	}
	return resp.Content, nil
}

func (s *Simulator) callTarget(ctx context.Context, target Target, history *ConversationHistory) (string, error) {
	reply, err := target(ctx, history)
	if err != nil {
		return "", types.WrapError(types.SIM_TARGET_FAILED, "target call failed", err)
	}
	return reply, nil
}

// sleep pauses for d unless the context is canceled first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
