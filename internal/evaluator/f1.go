package evaluator

import (
	"context"
	"strings"
	"unicode"
)

// MetricF1Score is the metric key produced by F1ScoreEvaluator.
const MetricF1Score = "f1_score"

// articles removed during answer normalization, SQuAD style.
var articles = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
}

// F1ScoreEvaluator computes token-overlap F1 between an answer and its ground
// truth. It is fully local: no judge model is involved.
type F1ScoreEvaluator struct{}

// NewF1ScoreEvaluator creates a new F1 score evaluator.
func NewF1ScoreEvaluator() *F1ScoreEvaluator {
	return &F1ScoreEvaluator{}
}

// Name returns the evaluator name.
func (e *F1ScoreEvaluator) Name() string {
	return "f1_score"
}

// Evaluate computes the F1 score for the input.
// Requires Answer and GroundTruth.
func (e *F1ScoreEvaluator) Evaluate(ctx context.Context, input Input) (*Result, error) {
	if err := requireFields(e.Name(), map[string]string{
		"answer":       input.Answer,
		"ground_truth": input.GroundTruth,
	}); err != nil {
		return nil, err
	}

	score := f1Score(input.Answer, input.GroundTruth)
	return &Result{
		Evaluator: e.Name(),
		Scores:    map[string]float64{MetricF1Score: score},
	}, nil
}

// f1Score computes precision/recall F1 over normalized tokens.
func f1Score(answer, groundTruth string) float64 {
	predicted := normalizeTokens(answer)
	reference := normalizeTokens(groundTruth)

	if len(predicted) == 0 || len(reference) == 0 {
		// Both empty counts as exact agreement.
		if len(predicted) == len(reference) {
			return 1.0
		}
		return 0.0
	}

	refCounts := make(map[string]int, len(reference))
	for _, tok := range reference {
		refCounts[tok]++
	}

	common := 0
	for _, tok := range predicted {
		if refCounts[tok] > 0 {
			refCounts[tok]--
			common++
		}
	}

	if common == 0 {
		return 0.0
	}

	precision := float64(common) / float64(len(predicted))
	recall := float64(common) / float64(len(reference))
	return 2 * precision * recall / (precision + recall)
}

// normalizeTokens lowercases, strips punctuation, drops articles, and splits
// on whitespace.
func normalizeTokens(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, isArticle := articles[f]; isArticle {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
