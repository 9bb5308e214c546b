package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/models"
)

type Verdict string

const (
	VerdictHigh   Verdict = "High"
	VerdictMedium Verdict = "Medium"
	VerdictLow    Verdict = "Low"
)

// MatchResult is the outcome of scoring one resume against one JD. Immutable
// once produced; hard + soft always equals total, each component capped at 50.
type MatchResult struct {
	HardScore     float64            `json:"hard_score"`
	SoftScore     float64            `json:"soft_score"`
	TotalScore    float64            `json:"total_score"`
	Verdict       Verdict            `json:"verdict"`
	MatchedPairs  []models.SkillPair `json:"matched_skills"`
	MissingSkills []string           `json:"missing_skills"`
	Suggestion    string             `json:"suggestion"`
	Objective     string             `json:"objective"`

	// ResumeEmbedding is kept so the vector index can reuse the embedding
	// already paid for during soft matching. Not part of the persisted result.
	ResumeEmbedding []float32 `json:"-"`
}

// RelevanceScorer combines the lexical and semantic matchers into a total
// score, verdict tier, gap analysis and suggestion.
type RelevanceScorer struct {
	sections *SectionExtractor
	hard     *HardMatcher
	soft     *SemanticMatcher

	highThreshold   float64
	mediumThreshold float64

	logger *zap.Logger
}

func NewRelevanceScorer(
	sections *SectionExtractor,
	hard *HardMatcher,
	soft *SemanticMatcher,
	highThreshold float64,
	mediumThreshold float64,
	logger *zap.Logger,
) *RelevanceScorer {
	return &RelevanceScorer{
		sections:        sections,
		hard:            hard,
		soft:            soft,
		highThreshold:   highThreshold,
		mediumThreshold: mediumThreshold,
		logger:          logger,
	}
}

// Score runs the full pipeline for one (resume, JD) pair: section extraction,
// hard match over skills, soft match over the raw texts, verdict and gap
// analysis. jdSections must come from the same jdText.
func (s *RelevanceScorer) Score(ctx context.Context, resumeText, jdText string, jdSections JDSections) (*MatchResult, error) {
	resumeSections := s.sections.ExtractResumeSections(Normalize(resumeText))

	// Recruiter-declared skill overrides arrive unfiltered, so fold duplicates
	// out here to keep the hard-match denominator honest.
	jdSkills := dedupFold(jdSections.MustHaveSkills)

	hardScore, pairs := s.hard.Match(resumeSections.Skills, jdSkills)

	softScore, resumeVec, err := s.soft.Match(ctx, resumeText, jdText)
	if err != nil {
		return nil, err
	}

	total := hardScore + softScore
	verdict := s.verdictFor(total)
	missing := missingSkills(jdSkills, pairs)

	s.logger.Debug("resume scored",
		zap.Float64("hard_score", hardScore),
		zap.Float64("soft_score", softScore),
		zap.Float64("total_score", total),
		zap.String("verdict", string(verdict)),
		zap.Int("missing_skills", len(missing)),
	)

	return &MatchResult{
		HardScore:       hardScore,
		SoftScore:       softScore,
		TotalScore:      total,
		Verdict:         verdict,
		MatchedPairs:    pairs,
		MissingSkills:   missing,
		Suggestion:      buildSuggestion(missing, jdSections.RoleTitle),
		Objective:       objectiveSnippet(resumeSections.Objective),
		ResumeEmbedding: resumeVec,
	}, nil
}

// verdictFor is a pure step function of the total score with inclusive lower
// bounds: >= high is High, >= medium is Medium, otherwise Low.
func (s *RelevanceScorer) verdictFor(total float64) Verdict {
	switch {
	case total >= s.highThreshold:
		return VerdictHigh
	case total >= s.mediumThreshold:
		return VerdictMedium
	default:
		return VerdictLow
	}
}

// missingSkills is the case-folded set of JD must-have skills left unmatched
// by the hard-match predicate, sorted so output is deterministic. A skill
// credited in matched pairs is by definition not missing.
func missingSkills(jdSkills []string, matched []models.SkillPair) []string {
	matchedSet := make(map[string]struct{}, len(matched))
	for _, pair := range matched {
		matchedSet[strings.ToLower(pair.JDSkill)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(jdSkills))
	var missing []string
	for _, skill := range jdSkills {
		folded := strings.ToLower(skill)
		if _, ok := matchedSet[folded]; ok {
			continue
		}
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		missing = append(missing, folded)
	}

	sort.Strings(missing)
	return missing
}

func buildSuggestion(missing []string, roleTitle string) string {
	role := roleTitle
	if role == "" {
		role = "the role"
	}

	if len(missing) == 0 {
		return fmt.Sprintf("All must-have skills for %s are covered.", role)
	}

	return fmt.Sprintf("To improve, focus on %s if relevant to %s.", strings.Join(missing, ", "), role)
}

func objectiveSnippet(objective string) string {
	runes := []rune(objective)
	if len(runes) <= 100 {
		return objective
	}
	return string(runes[:100]) + "..."
}
