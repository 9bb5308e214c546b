package services

import (
	"context"
	"fmt"
	"math"
)

// EmbeddingProvider turns text into a fixed-dimension vector. The production
// implementation is GeminiService; tests use stubs.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SemanticMatcher scores embedding-space similarity between resume and JD
// text. Contribution is bounded to 50 of the total 100. Provider failures are
// surfaced as ErrEmbeddingUnavailable, never as a silent zero, so a missing
// embedding can not be confused with low relevance.
type SemanticMatcher struct {
	provider EmbeddingProvider
}

func NewSemanticMatcher(provider EmbeddingProvider) *SemanticMatcher {
	return &SemanticMatcher{provider: provider}
}

// Match embeds both texts, computes cosine similarity and rescales [-1,1] to
// [0,50]. The resume embedding is returned alongside the score so callers can
// reuse it (it is the expensive part) without a second provider call.
func (m *SemanticMatcher) Match(ctx context.Context, resumeText, jdText string) (float64, []float32, error) {
	resumeVec, err := m.provider.Embed(ctx, resumeText)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: resume embedding: %v", ErrEmbeddingUnavailable, err)
	}

	jdVec, err := m.provider.Embed(ctx, jdText)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: jd embedding: %v", ErrEmbeddingUnavailable, err)
	}

	cos, err := cosineSimilarity(resumeVec, jdVec)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	score := (cos + 1) / 2 * 50
	return math.Min(score, 50), resumeVec, nil
}

func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude embedding")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
