package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonschema"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/types"
)

// judgeSchema is compiled once; the schema literal is a build-time constant.
var judgeSchema = mustCompileSchema(judgeResponseSchema)

func mustCompileSchema(src string) *jsonschema.Schema {
	schema, err := jsonschema.NewCompiler().Compile([]byte(src))
	if err != nil {
		panic(fmt.Sprintf("invalid judge response schema: %v", err))
	}
	return schema
}

// judgeVerdict is the parsed, schema-validated judge output.
type judgeVerdict struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// promptFields selects which Input fields a metric's user prompt includes.
type promptFields struct {
	question    bool
	answer      bool
	context     bool
	groundTruth bool
}

// promptedEvaluator scores an input by asking a judge model for a 1-5 star
// rating. All LLM-rated metrics share this implementation and differ only in
// name, metric key, system prompt, and which input fields they require.
type promptedEvaluator struct {
	name         string
	metric       string
	systemPrompt string
	fields       promptFields
	provider     llm.Provider
	model        string
}

// Name returns the evaluator name.
func (e *promptedEvaluator) Name() string {
	return e.name
}

// Evaluate asks the judge model for a rating and validates its output.
func (e *promptedEvaluator) Evaluate(ctx context.Context, input Input) (*Result, error) {
	if err := e.validateInput(input); err != nil {
		return nil, err
	}

	req := llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(e.systemPrompt),
			llm.NewUserMessage(e.userPrompt(input)),
		},
		// Judging wants determinism, not creativity.
		Temperature: 0,
		MaxTokens:   256,
	}

	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		return nil, types.WrapError(types.EVAL_JUDGE_FAILED,
			fmt.Sprintf("evaluator %q judge call failed", e.name), err)
	}

	verdict, err := parseVerdict(resp.Content)
	if err != nil {
		return nil, types.WrapError(types.EVAL_BAD_JUDGE_OUTPUT,
			fmt.Sprintf("evaluator %q got an unusable judge response", e.name), err)
	}

	return &Result{
		Evaluator: e.name,
		Scores:    map[string]float64{e.metric: float64(verdict.Score)},
		Reason:    verdict.Reason,
	}, nil
}

func (e *promptedEvaluator) validateInput(input Input) error {
	required := map[string]string{}
	if e.fields.question {
		required["question"] = input.Question
	}
	if e.fields.answer {
		required["answer"] = input.Answer
	}
	if e.fields.context {
		required["context"] = input.Context
	}
	if e.fields.groundTruth {
		required["ground_truth"] = input.GroundTruth
	}
	return requireFields(e.name, required)
}

func (e *promptedEvaluator) userPrompt(input Input) string {
	var b strings.Builder
	if e.fields.context {
		fmt.Fprintf(&b, "CONTEXT: %s\n", input.Context)
	}
	if e.fields.question {
		fmt.Fprintf(&b, "QUESTION: %s\n", input.Question)
	}
	if e.fields.groundTruth {
		fmt.Fprintf(&b, "CORRECT ANSWER: %s\n", input.GroundTruth)
	}
	if e.fields.answer {
		if e.fields.groundTruth {
			fmt.Fprintf(&b, "PREDICTED ANSWER: %s\n", input.Answer)
		} else {
			fmt.Fprintf(&b, "ANSWER: %s\n", input.Answer)
		}
	}
	return b.String()
}

// parseVerdict extracts and validates the judge's JSON verdict. A bare
// numeric rating is accepted as a fallback for judges that ignore the output
// format instruction.
func parseVerdict(content string) (*judgeVerdict, error) {
	jsonStr, err := llm.ExtractJSON(content)
	if err != nil {
		rating, ratingErr := llm.ExtractRating(content)
		if ratingErr != nil {
			return nil, err
		}
		score := int(rating)
		if score < 1 || score > 5 {
			return nil, fmt.Errorf("rating %d outside the 1-5 scale", score)
		}
		return &judgeVerdict{Score: score}, nil
	}

	result := judgeSchema.ValidateJSON([]byte(jsonStr))
	if !result.IsValid() {
		return nil, fmt.Errorf("judge response failed schema validation: %v", result.Errors)
	}

	var verdict judgeVerdict
	if err := json.Unmarshal([]byte(jsonStr), &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode judge response: %w", err)
	}
	return &verdict, nil
}
