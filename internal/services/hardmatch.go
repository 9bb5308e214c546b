package services

import (
	"math"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"hiresight/resume-relevance/internal/models"
)

// HardMatcher scores the lexical overlap between a resume's skills and the
// JD's must-have skills. Contribution is bounded to 50 of the total 100.
type HardMatcher struct {
	fuzzyThreshold int
}

func NewHardMatcher(fuzzyThreshold int) *HardMatcher {
	return &HardMatcher{fuzzyThreshold: fuzzyThreshold}
}

// Match walks JD skills in input order and credits the first resume skill (in
// input order) that either contains the JD skill case-insensitively or clears
// the partial-ratio threshold. At most one match per JD skill; a resume skill
// may be reused across JD skills. Empty input on either side yields (0, nil).
func (m *HardMatcher) Match(resumeSkills, jdSkills []string) (float64, []models.SkillPair) {
	if len(jdSkills) == 0 || len(resumeSkills) == 0 {
		return 0, nil
	}

	var pairs []models.SkillPair
	for _, jdSkill := range jdSkills {
		jdLower := strings.ToLower(jdSkill)
		for _, resumeSkill := range resumeSkills {
			resumeLower := strings.ToLower(resumeSkill)
			if strings.Contains(resumeLower, jdLower) ||
				fuzzy.PartialRatio(jdLower, resumeLower) > m.fuzzyThreshold {
				pairs = append(pairs, models.SkillPair{JDSkill: jdSkill, ResumeSkill: resumeSkill})
				break
			}
		}
	}

	score := float64(len(pairs)) / float64(len(jdSkills)) * 50
	return math.Min(score, 50), pairs
}
