package services

import (
	"math"
	"reflect"
	"testing"

	"hiresight/resume-relevance/internal/models"
)

func TestHardMatcherContainment(t *testing.T) {
	m := NewHardMatcher(80)

	// "SQL expert" contains "sql", so SQL is credited; AWS stays unmatched.
	score, pairs := m.Match(
		[]string{"Python", "SQL expert"},
		[]string{"Python", "SQL", "AWS"},
	)

	wantScore := 2.0 / 3.0 * 50
	if math.Abs(score-wantScore) > 1e-9 {
		t.Errorf("score = %v, want %v", score, wantScore)
	}

	wantPairs := []models.SkillPair{
		{JDSkill: "Python", ResumeSkill: "Python"},
		{JDSkill: "SQL", ResumeSkill: "SQL expert"},
	}
	if !reflect.DeepEqual(pairs, wantPairs) {
		t.Errorf("pairs = %v, want %v", pairs, wantPairs)
	}
}

func TestHardMatcherEmptyInputs(t *testing.T) {
	m := NewHardMatcher(80)

	tests := []struct {
		name   string
		resume []string
		jd     []string
	}{
		{"no resume skills", nil, []string{"Python"}},
		{"no jd skills", []string{"Python"}, nil},
		{"both empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, pairs := m.Match(tt.resume, tt.jd)
			if score != 0 || pairs != nil {
				t.Errorf("Match() = (%v, %v), want (0, nil)", score, pairs)
			}
		})
	}
}

func TestHardMatcherFullMatch(t *testing.T) {
	m := NewHardMatcher(80)

	score, pairs := m.Match([]string{"Python", "SQL"}, []string{"Python", "SQL"})
	if score != 50 {
		t.Errorf("score = %v, want 50", score)
	}
	if len(pairs) != 2 {
		t.Errorf("pairs = %v", pairs)
	}
}

func TestHardMatcherNoMatch(t *testing.T) {
	m := NewHardMatcher(80)

	score, pairs := m.Match([]string{"Go"}, []string{"Rust"})
	if score != 0 || len(pairs) != 0 {
		t.Errorf("Match() = (%v, %v), want no credit", score, pairs)
	}
}

func TestHardMatcherFirstResumeSkillWins(t *testing.T) {
	m := NewHardMatcher(80)

	// Both resume entries contain "sql"; the earlier one is credited.
	_, pairs := m.Match([]string{"PostgreSQL", "MySQL"}, []string{"SQL"})
	want := []models.SkillPair{{JDSkill: "SQL", ResumeSkill: "PostgreSQL"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("pairs = %v, want %v", pairs, want)
	}
}

func TestHardMatcherResumeSkillReusable(t *testing.T) {
	m := NewHardMatcher(80)

	// One resume entry can satisfy several JD skills.
	score, pairs := m.Match([]string{"Python and SQL scripting"}, []string{"Python", "SQL"})
	if score != 50 {
		t.Errorf("score = %v, want 50", score)
	}
	if len(pairs) != 2 {
		t.Errorf("pairs = %v, want both JD skills credited", pairs)
	}
}

func TestHardMatcherFuzzy(t *testing.T) {
	m := NewHardMatcher(80)

	// No containment ("scikit learn" lacks the hyphen) so only the partial
	// ratio can credit it.
	score, pairs := m.Match([]string{"scikit learn"}, []string{"Scikit-learn"})
	if score != 50 {
		t.Errorf("score = %v, want 50", score)
	}
	if len(pairs) != 1 {
		t.Fatalf("pairs = %v", pairs)
	}
}

func TestHardMatcherMonotonic(t *testing.T) {
	m := NewHardMatcher(80)
	jd := []string{"Python", "SQL", "AWS"}

	base, _ := m.Match([]string{"Python"}, jd)
	more, _ := m.Match([]string{"Python", "SQL"}, jd)
	if more < base {
		t.Errorf("adding a matching skill lowered the score: %v -> %v", base, more)
	}
}
