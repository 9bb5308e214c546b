package services

import (
	"strings"
	"testing"
)

func TestChunkTextShortInput(t *testing.T) {
	chunks := NewTextChunker().ChunkText("one paragraph only", 1000, 200)
	if len(chunks) != 1 || chunks[0] != "one paragraph only" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestChunkTextSplitsParagraphs(t *testing.T) {
	para := strings.Repeat("word ", 60) // ~300 chars
	text := para + "\n\n" + para + "\n\n" + para

	chunks := NewTextChunker().ChunkText(text, 400, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 400 {
			t.Errorf("chunk %d exceeds budget: %d chars", i, len(c))
		}
	}
}

func TestChunkTextEmpty(t *testing.T) {
	if chunks := NewTextChunker().ChunkText("", 500, 100); len(chunks) != 0 {
		t.Errorf("chunks = %v, want none", chunks)
	}
}
