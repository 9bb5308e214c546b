package services

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/models"
)

// stubGemini returns a canned completion and records the prompt.
type stubGemini struct {
	response string
	err      error
	prompt   string
}

func (s *stubGemini) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func sampleMatchResult() *MatchResult {
	return &MatchResult{
		HardScore:  25,
		SoftScore:  40,
		TotalScore: 65,
		Verdict:    VerdictMedium,
		MatchedPairs: []models.SkillPair{
			{JDSkill: "Python", ResumeSkill: "Python"},
		},
		MissingSkills: []string{"sql"},
		Suggestion:    "To improve, focus on sql if relevant to Data Analyst.",
	}
}

func TestStaticReportProvider(t *testing.T) {
	provider := NewNarrativeReportProvider("static", nil, nil, zap.NewNop())

	report, err := provider.Generate(context.Background(), ReportInput{
		RoleTitle: "Data Analyst",
		Result:    sampleMatchResult(),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if report.OverallScore != 65 {
		t.Errorf("overall score = %v, want 65", report.OverallScore)
	}
	if len(report.MatchedSkills) != 1 || report.MatchedSkills[0].Skill != "Python" {
		t.Errorf("matched skills = %v", report.MatchedSkills)
	}
	if len(report.MissingSkills) != 1 || report.MissingSkills[0].Skill != "sql" {
		t.Errorf("missing skills = %v", report.MissingSkills)
	}
	if len(report.Improvements.Resume) != 1 {
		t.Errorf("improvements = %v", report.Improvements.Resume)
	}
}

func TestStaticReportProviderRequiresResult(t *testing.T) {
	provider := NewNarrativeReportProvider("static", nil, nil, zap.NewNop())
	if _, err := provider.Generate(context.Background(), ReportInput{}); err == nil {
		t.Error("expected error for missing match result")
	}
}

func TestGeminiReportProvider(t *testing.T) {
	gemini := &stubGemini{
		response: "```json\n" + `{
  "overall_score": 99,
  "matched_skills": [{"skill": "Python", "score": 0.9, "required": true}],
  "missing_skills": [{"skill": "sql", "importance": "must-have"}],
  "experience": {"required": "3+ years", "match": "2 years shown", "level": "mid"},
  "education": {"match": "BSc in CS", "ranking": "adequate"},
  "improvements": {"resume": ["Quantify dashboard impact"]}
}` + "\n```",
	}
	provider := NewNarrativeReportProvider("gemini", gemini, NewTextChunker(), zap.NewNop())

	report, err := provider.Generate(context.Background(), ReportInput{
		RoleTitle:  "Data Analyst",
		ResumeText: "Skills: Python",
		JDText:     "Skills Required: Python, SQL",
		Result:     sampleMatchResult(),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// The deterministic score wins over whatever the model claims.
	if report.OverallScore != 65 {
		t.Errorf("overall score = %v, want 65", report.OverallScore)
	}
	if report.Experience.Level != "mid" {
		t.Errorf("experience level = %q", report.Experience.Level)
	}
	if report.Education.Ranking != "adequate" {
		t.Errorf("education ranking = %q", report.Education.Ranking)
	}

	for _, fragment := range []string{"Data Analyst", "65.00", "sql", "Skills Required: Python, SQL"} {
		if !strings.Contains(gemini.prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestNewNarrativeReportProviderFallsBackToStatic(t *testing.T) {
	// Gemini selected but no client configured.
	provider := NewNarrativeReportProvider("gemini", nil, nil, zap.NewNop())
	if _, ok := provider.(*staticReportProvider); !ok {
		t.Errorf("expected static fallback, got %T", provider)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced object", "```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"surrounding prose", "Here you go: {\"a\":1} hope it helps", "{\"a\":1}"},
		{"array", "[1,2,3]", "[1,2,3]"},
		{"no json", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.TrimSpace(extractJSON(tt.in)); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
