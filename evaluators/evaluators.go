// Package evaluators is the public surface of the promptflow evaluators.
// It re-exports the evaluator types and registers each one as a lazily
// loadable module, so importers pay for judge-model wiring only when an
// evaluator is actually used.
package evaluators

import (
	"github.com/je17/promptflow/internal/evaluator"
	"github.com/je17/promptflow/internal/llm"
)

// Re-exported evaluator types.
type (
	GroundednessEvaluator = evaluator.GroundednessEvaluator
	QAEvaluator           = evaluator.QAEvaluator
	F1ScoreEvaluator      = evaluator.F1ScoreEvaluator
)

// Re-exported supporting types for callers composing their own evaluation.
type (
	Evaluator = evaluator.Evaluator
	Input     = evaluator.Input
	Result    = evaluator.Result
)

// NewGroundednessEvaluator creates a groundedness evaluator judged by the
// given provider and model.
func NewGroundednessEvaluator(provider llm.Provider, model string) *GroundednessEvaluator {
	return evaluator.NewGroundednessEvaluator(provider, model)
}

// NewQAEvaluator creates the composite question-answering evaluator.
func NewQAEvaluator(provider llm.Provider, model string, opts ...evaluator.QAOption) *QAEvaluator {
	return evaluator.NewQAEvaluator(provider, model, opts...)
}

// NewF1ScoreEvaluator creates the token-overlap F1 evaluator.
func NewF1ScoreEvaluator() *F1ScoreEvaluator {
	return evaluator.NewF1ScoreEvaluator()
}
