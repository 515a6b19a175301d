package evaluator

import (
	"context"
	"fmt"

	"github.com/je17/promptflow/internal/types"
)

// Input is a single evaluation example. Which fields are required depends on
// the evaluator: F1 needs Answer and GroundTruth, groundedness needs Answer
// and Context, and the composite QA evaluator wants all four.
type Input struct {
	Question    string `json:"question,omitempty"`
	Answer      string `json:"answer,omitempty"`
	Context     string `json:"context,omitempty"`
	GroundTruth string `json:"ground_truth,omitempty"`
}

// Result holds the metric values produced by one evaluator for one input.
type Result struct {
	// Evaluator is the name of the evaluator that produced this result.
	Evaluator string `json:"evaluator"`

	// Scores maps metric names to values. LLM-rated metrics use the 1-5
	// stars scale; computed metrics like F1 are in [0, 1].
	Scores map[string]float64 `json:"scores"`

	// Reason optionally carries the judge's explanation for its rating.
	Reason string `json:"reason,omitempty"`
}

// Primary returns the value of the named metric, or 0 if absent.
func (r *Result) Primary(metric string) float64 {
	if r == nil {
		return 0
	}
	return r.Scores[metric]
}

// Merge copies all scores from other into r. Later merges win on key clashes.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if r.Scores == nil {
		r.Scores = make(map[string]float64, len(other.Scores))
	}
	for k, v := range other.Scores {
		r.Scores[k] = v
	}
}

// Evaluator scores a single input. Implementations must be safe for
// concurrent use; the runner fans inputs out across goroutines.
type Evaluator interface {
	// Name returns the evaluator name (e.g., "f1_score", "groundedness")
	Name() string

	// Evaluate scores one input. Returns EVAL_INVALID_INPUT if the input
	// lacks the fields this evaluator needs.
	Evaluate(ctx context.Context, input Input) (*Result, error)
}

// requireFields validates that the named input fields are non-empty.
func requireFields(evaluator string, fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return types.NewError(types.EVAL_INVALID_INPUT,
				fmt.Sprintf("evaluator %q requires a non-empty %s", evaluator, name))
		}
	}
	return nil
}
