package services

import (
	"context"
	"errors"
	"math"
	"testing"
)

// stubEmbedder returns canned vectors per input text.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestSemanticMatcherIdenticalTexts(t *testing.T) {
	m := NewSemanticMatcher(&stubEmbedder{
		vectors: map[string][]float32{
			"same": {0.5, 0.5, 0.1},
		},
	})

	score, vec, err := m.Match(context.Background(), "same", "same")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(score-50) > 1e-9 {
		t.Errorf("score = %v, want 50", score)
	}
	if len(vec) != 3 {
		t.Errorf("resume embedding not returned: %v", vec)
	}
}

func TestSemanticMatcherOrthogonal(t *testing.T) {
	m := NewSemanticMatcher(&stubEmbedder{
		vectors: map[string][]float32{
			"resume": {1, 0},
			"jd":     {0, 1},
		},
	})

	score, _, err := m.Match(context.Background(), "resume", "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(score-25) > 1e-9 {
		t.Errorf("score = %v, want 25 for orthogonal vectors", score)
	}
}

func TestSemanticMatcherOpposite(t *testing.T) {
	m := NewSemanticMatcher(&stubEmbedder{
		vectors: map[string][]float32{
			"resume": {1, 0},
			"jd":     {-1, 0},
		},
	})

	score, _, err := m.Match(context.Background(), "resume", "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(score) > 1e-9 {
		t.Errorf("score = %v, want 0 for opposite vectors", score)
	}
}

func TestSemanticMatcherProviderError(t *testing.T) {
	m := NewSemanticMatcher(&stubEmbedder{err: errors.New("quota exceeded")})

	_, _, err := m.Match(context.Background(), "a", "b")
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Errorf("err = %v, want ErrEmbeddingUnavailable", err)
	}
}

func TestSemanticMatcherDimensionMismatch(t *testing.T) {
	m := NewSemanticMatcher(&stubEmbedder{
		vectors: map[string][]float32{
			"resume": {1, 0, 0},
			"jd":     {1, 0},
		},
	})

	_, _, err := m.Match(context.Background(), "resume", "jd")
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Errorf("err = %v, want ErrEmbeddingUnavailable", err)
	}
}

func TestSemanticMatcherZeroMagnitude(t *testing.T) {
	m := NewSemanticMatcher(&stubEmbedder{
		vectors: map[string][]float32{
			"resume": {0, 0},
			"jd":     {1, 0},
		},
	})

	_, _, err := m.Match(context.Background(), "resume", "jd")
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Errorf("err = %v, want ErrEmbeddingUnavailable", err)
	}
}
