package evaluators

import (
	"context"

	"github.com/je17/promptflow/internal/evaluator"
	"github.com/je17/promptflow/internal/lazyload"
)

// Dotted module names under which the evaluators register in
// lazyload.DefaultRegistry.
const (
	ModuleGroundedness = "evaluators.groundedness"
	ModuleQA           = "evaluators.qa"
	ModuleF1Score      = "evaluators.f1_score"
)

// Module attribute names shared by every evaluator module.
const (
	AttrNew     = "new"
	AttrName    = "name"
	AttrMetrics = "metrics"
)

func init() {
	reg := lazyload.DefaultRegistry

	reg.MustRegisterLoader(ModuleF1Score, func(ctx context.Context) (*lazyload.Module, error) {
		return lazyload.NewModule(ModuleF1Score, map[string]any{
			AttrNew:     NewF1ScoreEvaluator,
			AttrName:    "f1_score",
			AttrMetrics: []string{evaluator.MetricF1Score},
		}), nil
	})

	reg.MustRegisterLoader(ModuleGroundedness, func(ctx context.Context) (*lazyload.Module, error) {
		return lazyload.NewModule(ModuleGroundedness, map[string]any{
			AttrNew:     NewGroundednessEvaluator,
			AttrName:    "groundedness",
			AttrMetrics: []string{evaluator.MetricGroundedness},
		}), nil
	})

	reg.MustRegisterLoader(ModuleQA, func(ctx context.Context) (*lazyload.Module, error) {
		return lazyload.NewModule(ModuleQA, map[string]any{
			AttrNew:  NewQAEvaluator,
			AttrName: "qa",
			AttrMetrics: []string{
				evaluator.MetricGroundedness,
				evaluator.MetricRelevance,
				evaluator.MetricCoherence,
				evaluator.MetricFluency,
				evaluator.MetricSimilarity,
				evaluator.MetricF1Score,
			},
		}), nil
	})
}
