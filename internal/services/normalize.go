package services

import "strings"

// Normalize collapses extraction noise in raw document text: whitespace runs
// inside a line become a single space, blank lines are dropped, and the
// remaining lines are rejoined with single newlines. Line structure is kept
// because the section heuristics and the role-title rule are line based.
func Normalize(raw string) string {
	lines := strings.Split(raw, "\n")
	var cleaned []string

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
