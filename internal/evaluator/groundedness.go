package evaluator

import (
	"github.com/je17/promptflow/internal/llm"
)

// Metric keys produced by the LLM-rated evaluators. The gpt_ prefix marks
// judge-rated metrics on the 1-5 stars scale.
const (
	MetricGroundedness = "gpt_groundedness"
	MetricRelevance    = "gpt_relevance"
	MetricCoherence    = "gpt_coherence"
	MetricFluency      = "gpt_fluency"
	MetricSimilarity   = "gpt_similarity"
)

// GroundednessEvaluator rates how well an answer is supported by its context.
type GroundednessEvaluator struct {
	promptedEvaluator
}

// NewGroundednessEvaluator creates a groundedness evaluator judged by the
// given provider and model.
func NewGroundednessEvaluator(provider llm.Provider, model string) *GroundednessEvaluator {
	return &GroundednessEvaluator{promptedEvaluator{
		name:         "groundedness",
		metric:       MetricGroundedness,
		systemPrompt: groundednessSystemPrompt,
		fields:       promptFields{answer: true, context: true},
		provider:     provider,
		model:        model,
	}}
}

// RelevanceEvaluator rates how relevant an answer is to its question.
type RelevanceEvaluator struct {
	promptedEvaluator
}

// NewRelevanceEvaluator creates a relevance evaluator judged by the given
// provider and model.
func NewRelevanceEvaluator(provider llm.Provider, model string) *RelevanceEvaluator {
	return &RelevanceEvaluator{promptedEvaluator{
		name:         "relevance",
		metric:       MetricRelevance,
		systemPrompt: relevanceSystemPrompt,
		fields:       promptFields{question: true, answer: true, context: true},
		provider:     provider,
		model:        model,
	}}
}

// CoherenceEvaluator rates how naturally an answer reads as a whole.
type CoherenceEvaluator struct {
	promptedEvaluator
}

// NewCoherenceEvaluator creates a coherence evaluator judged by the given
// provider and model.
func NewCoherenceEvaluator(provider llm.Provider, model string) *CoherenceEvaluator {
	return &CoherenceEvaluator{promptedEvaluator{
		name:         "coherence",
		metric:       MetricCoherence,
		systemPrompt: coherenceSystemPrompt,
		fields:       promptFields{question: true, answer: true},
		provider:     provider,
		model:        model,
	}}
}

// FluencyEvaluator rates the language quality of an answer.
type FluencyEvaluator struct {
	promptedEvaluator
}

// NewFluencyEvaluator creates a fluency evaluator judged by the given
// provider and model.
func NewFluencyEvaluator(provider llm.Provider, model string) *FluencyEvaluator {
	return &FluencyEvaluator{promptedEvaluator{
		name:         "fluency",
		metric:       MetricFluency,
		systemPrompt: fluencySystemPrompt,
		fields:       promptFields{question: true, answer: true},
		provider:     provider,
		model:        model,
	}}
}

// SimilarityEvaluator rates the equivalence between a predicted answer and
// the ground truth answer.
type SimilarityEvaluator struct {
	promptedEvaluator
}

// NewSimilarityEvaluator creates a similarity evaluator judged by the given
// provider and model.
func NewSimilarityEvaluator(provider llm.Provider, model string) *SimilarityEvaluator {
	return &SimilarityEvaluator{promptedEvaluator{
		name:         "similarity",
		metric:       MetricSimilarity,
		systemPrompt: similaritySystemPrompt,
		fields:       promptFields{question: true, answer: true, groundTruth: true},
		provider:     provider,
		model:        model,
	}}
}
