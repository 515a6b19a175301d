package evaluator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/je17/promptflow/internal/llm"
)

// QAEvaluator is the composite question-answering evaluator. It fans a single
// input out to groundedness, relevance, coherence, fluency, similarity, and
// F1 and merges their metrics into one result.
type QAEvaluator struct {
	children    []Evaluator
	parallelism int
}

// QAOption configures a QAEvaluator.
type QAOption func(*QAEvaluator)

// WithParallelism bounds how many sub-evaluators run concurrently.
// Values below 1 are ignored. The default runs all sub-evaluators at once.
func WithParallelism(n int) QAOption {
	return func(e *QAEvaluator) {
		if n >= 1 {
			e.parallelism = n
		}
	}
}

// NewQAEvaluator creates the composite evaluator with all six sub-evaluators
// judged by the given provider and model.
func NewQAEvaluator(provider llm.Provider, model string, opts ...QAOption) *QAEvaluator {
	e := &QAEvaluator{
		children: []Evaluator{
			NewGroundednessEvaluator(provider, model),
			NewRelevanceEvaluator(provider, model),
			NewCoherenceEvaluator(provider, model),
			NewFluencyEvaluator(provider, model),
			NewSimilarityEvaluator(provider, model),
			NewF1ScoreEvaluator(),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the evaluator name.
func (e *QAEvaluator) Name() string {
	return "qa"
}

// Evaluate runs every sub-evaluator against the input and merges their
// scores. The first sub-evaluator error cancels the rest and propagates.
// Requires Question, Answer, Context, and GroundTruth.
func (e *QAEvaluator) Evaluate(ctx context.Context, input Input) (*Result, error) {
	if err := requireFields(e.Name(), map[string]string{
		"question":     input.Question,
		"answer":       input.Answer,
		"context":      input.Context,
		"ground_truth": input.GroundTruth,
	}); err != nil {
		return nil, err
	}

	merged := &Result{
		Evaluator: e.Name(),
		Scores:    make(map[string]float64),
	}
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	if e.parallelism > 0 {
		group.SetLimit(e.parallelism)
	}

	for _, child := range e.children {
		child := child
		group.Go(func() error {
			result, err := child.Evaluate(groupCtx, input)
			if err != nil {
				return err
			}

			mu.Lock()
			merged.Merge(result)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}
