package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NarrativeReport is the structured breakdown shown alongside the numeric
// relevance score.
type NarrativeReport struct {
	OverallScore  float64            `json:"overall_score"`
	MatchedSkills []ReportSkillMatch `json:"matched_skills"`
	MissingSkills []ReportSkillGap   `json:"missing_skills"`
	Experience    ReportExperience   `json:"experience"`
	Education     ReportEducation    `json:"education"`
	Improvements  ReportImprovements `json:"improvements"`
}

type ReportSkillMatch struct {
	Skill    string  `json:"skill"`
	Score    float64 `json:"score"`
	Required bool    `json:"required"`
}

type ReportSkillGap struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
}

type ReportExperience struct {
	Required string `json:"required"`
	Match    string `json:"match"`
	Level    string `json:"level"`
}

type ReportEducation struct {
	Match   string `json:"match"`
	Ranking string `json:"ranking"`
}

type ReportImprovements struct {
	Resume []string `json:"resume"`
}

// ReportInput carries everything a provider needs to produce a report for a
// single completed evaluation.
type ReportInput struct {
	RoleTitle  string
	ResumeText string
	JDText     string
	Result     *MatchResult
}

type NarrativeReportProvider interface {
	Generate(ctx context.Context, input ReportInput) (*NarrativeReport, error)
}

// NewNarrativeReportProvider selects the provider by name. "gemini" produces
// an LLM-written report; anything else falls back to the deterministic
// provider built from the match result alone.
func NewNarrativeReportProvider(provider string, gemini GeminiService, chunker TextChunker, logger *zap.Logger) NarrativeReportProvider {
	if provider == "gemini" && gemini != nil {
		return &geminiReportProvider{
			gemini:  gemini,
			chunker: chunker,
			logger:  logger,
		}
	}
	return &staticReportProvider{}
}

// staticReportProvider derives a report from the scoring output without any
// external calls. It is the default when no LLM key is configured.
type staticReportProvider struct{}

// Generate implements NarrativeReportProvider.
func (s *staticReportProvider) Generate(_ context.Context, input ReportInput) (*NarrativeReport, error) {
	if input.Result == nil {
		return nil, fmt.Errorf("missing match result")
	}

	report := &NarrativeReport{
		OverallScore:  input.Result.TotalScore,
		MatchedSkills: []ReportSkillMatch{},
		MissingSkills: []ReportSkillGap{},
		Experience: ReportExperience{
			Required: "not assessed",
			Match:    "not assessed",
			Level:    "unknown",
		},
		Education: ReportEducation{
			Match:   "not assessed",
			Ranking: "unknown",
		},
		Improvements: ReportImprovements{Resume: []string{}},
	}

	for _, pair := range input.Result.MatchedPairs {
		report.MatchedSkills = append(report.MatchedSkills, ReportSkillMatch{
			Skill:    pair.JDSkill,
			Score:    1.0,
			Required: true,
		})
	}

	for _, skill := range input.Result.MissingSkills {
		report.MissingSkills = append(report.MissingSkills, ReportSkillGap{
			Skill:      skill,
			Importance: "must-have",
		})
		report.Improvements.Resume = append(report.Improvements.Resume,
			fmt.Sprintf("Add evidence of %s experience to the resume.", skill))
	}

	return report, nil
}

// geminiReportProvider asks the LLM for a structured report grounded in the
// deterministic scores so the narrative never contradicts the numbers.
type geminiReportProvider struct {
	gemini  GeminiService
	chunker TextChunker
	logger  *zap.Logger
}

// Generate implements NarrativeReportProvider.
func (g *geminiReportProvider) Generate(ctx context.Context, input ReportInput) (*NarrativeReport, error) {
	if input.Result == nil {
		return nil, fmt.Errorf("missing match result")
	}

	prompt := buildReportPrompt(g.chunker, input)

	response, err := g.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	var report NarrativeReport
	if err := json.Unmarshal([]byte(extractJSON(response)), &report); err != nil {
		g.logger.Warn("failed to parse report response", zap.Error(err))
		return nil, fmt.Errorf("failed to parse report response: %w", err)
	}

	// The headline number is authoritative; do not let the model restate it.
	report.OverallScore = input.Result.TotalScore

	return &report, nil
}

// reportTextBudget bounds how much resume and JD text goes into the prompt.
const reportTextBudget = 6000

func buildReportPrompt(chunker TextChunker, input ReportInput) string {
	role := input.RoleTitle
	if role == "" {
		role = "the role"
	}

	matched := make([]string, 0, len(input.Result.MatchedPairs))
	for _, pair := range input.Result.MatchedPairs {
		matched = append(matched, fmt.Sprintf("%s (resume: %s)", pair.JDSkill, pair.ResumeSkill))
	}

	var sb strings.Builder
	sb.WriteString("You are an expert technical recruiter reviewing a resume against a job description.\n\n")
	sb.WriteString(fmt.Sprintf("ROLE: %s\n", role))
	sb.WriteString(fmt.Sprintf("RELEVANCE SCORE: %.2f / 100 (verdict: %s)\n", input.Result.TotalScore, input.Result.Verdict))
	sb.WriteString(fmt.Sprintf("MATCHED MUST-HAVE SKILLS: %s\n", joinOrNone(matched)))
	sb.WriteString(fmt.Sprintf("MISSING MUST-HAVE SKILLS: %s\n\n", joinOrNone(input.Result.MissingSkills)))

	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(boundedText(chunker, input.JDText))
	sb.WriteString("\n\nRESUME:\n")
	sb.WriteString(boundedText(chunker, input.ResumeText))
	sb.WriteString("\n\n")

	sb.WriteString(`Respond with ONLY valid JSON in this exact format, no markdown:
{
  "overall_score": <number 0-100>,
  "matched_skills": [{"skill": "<name>", "score": <number 0-1>, "required": <bool>}],
  "missing_skills": [{"skill": "<name>", "importance": "<must-have|nice-to-have>"}],
  "experience": {"required": "<what the JD asks for>", "match": "<how the resume compares>", "level": "<junior|mid|senior|unknown>"},
  "education": {"match": "<how the resume compares>", "ranking": "<strong|adequate|weak|unknown>"},
  "improvements": {"resume": ["<concrete suggestion>"]}
}

Ground every claim in the resume and job description text above. Keep matched_skills and missing_skills consistent with the lists given.`)

	return sb.String()
}

func boundedText(chunker TextChunker, text string) string {
	if len(text) <= reportTextBudget {
		return text
	}
	chunks := chunker.ChunkText(text, reportTextBudget, 0)
	if len(chunks) == 0 {
		return ""
	}
	return chunks[0]
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// extractJSON strips markdown fences and isolates the JSON object or array in
// an LLM response.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
