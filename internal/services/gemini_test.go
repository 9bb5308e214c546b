package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"short text untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"ascii truncated", "hello world", 5, "hello"},
		{"multi-byte runes counted as one", "héllo wörld", 7, "héllo w"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.text, tt.max); got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	// A cut on a byte boundary would split the final é in half.
	text := strings.Repeat("é", 100)
	got := truncateRunes(text, 40)

	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 40 {
		t.Errorf("rune count = %d, want 40", n)
	}
}
