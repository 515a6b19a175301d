package evaluators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/lazyload"
)

func TestModulesRegisteredForLazyImport(t *testing.T) {
	for _, name := range []string{ModuleF1Score, ModuleGroundedness, ModuleQA} {
		assert.True(t, lazyload.DefaultRegistry.HasLoader(name), name)
	}
}

func TestLazyImportF1Module(t *testing.T) {
	proxy, err := lazyload.LazyImport(nil, ModuleF1Score)
	require.NoError(t, err)

	v, err := proxy.Attr(context.Background(), AttrNew)
	require.NoError(t, err)

	construct, ok := v.(func() *F1ScoreEvaluator)
	require.True(t, ok, "module %q must expose its constructor", ModuleF1Score)

	e := construct()
	result, err := e.Evaluate(context.Background(), Input{
		Answer:      "Paris",
		GroundTruth: "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Scores["f1_score"])
}

func TestEvaluatorModuleMetadata(t *testing.T) {
	proxy, err := lazyload.LazyImport(nil, ModuleQA)
	require.NoError(t, err)

	name, err := proxy.Attr(context.Background(), AttrName)
	require.NoError(t, err)
	assert.Equal(t, "qa", name)

	metrics, err := proxy.Attr(context.Background(), AttrMetrics)
	require.NoError(t, err)
	assert.Len(t, metrics, 6)
}

func TestReExportedConstructorsSatisfyEvaluator(t *testing.T) {
	// Constructors alone must not dial anything, so nil providers are fine.
	var _ Evaluator = NewF1ScoreEvaluator()
	var _ Evaluator = NewGroundednessEvaluator(nil, "")
	var _ Evaluator = NewQAEvaluator(nil, "")
}
