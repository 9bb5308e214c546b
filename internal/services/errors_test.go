package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unsupported format", ErrUnsupportedFormat, "UnsupportedFormat"},
		{"extraction failed", ErrExtractionFailed, "ExtractionFailed"},
		{"embedding unavailable", ErrEmbeddingUnavailable, "EmbeddingUnavailable"},
		{"timeout", ErrTimeout, "Timeout"},
		{"missing input", ErrMissingInput, "MissingInput"},
		{"unknown error", errors.New("boom"), "Internal"},
		{"wrapped sentinel", fmt.Errorf("item: %w", ErrTimeout), "Timeout"},
		{"doubly wrapped", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrExtractionFailed)), "ExtractionFailed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}
