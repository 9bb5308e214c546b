package services

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// ResumeSections are the fields heuristically pulled out of a resume.
// Derived deterministically from normalized text; extraction never fails,
// missing sections stay empty.
type ResumeSections struct {
	Objective  string   `json:"objective"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
}

// JDSections are the fields pulled out of a job description.
type JDSections struct {
	RoleTitle      string   `json:"role_title"`
	MustHaveSkills []string `json:"must_have_skills"`
	Description    string   `json:"description"`
}

// SectionConfig tunes the extraction heuristics. The vocabularies are the
// fallback keyword lists scanned when no labeled skills section exists.
type SectionConfig struct {
	MaxSkills        int
	MaxBullets       int
	ResumeSkillVocab []string
	JDSkillVocab     []string
}

func DefaultSectionConfig() SectionConfig {
	return SectionConfig{
		MaxSkills:  10,
		MaxBullets: 2,
		ResumeSkillVocab: []string{
			"Python", "SQL", "Matplotlib", "Seaborn", "Power BI",
			"Pandas", "NumPy", "Scikit-learn", "BeautifulSoup",
		},
		JDSkillVocab: []string{
			"Python", "R", "Excel", "Pandas", "Mechanical", "Manufacturing",
		},
	}
}

// sectionRule anchors one field: a heading pattern and the terminator headings
// that end its block. Rules are greedy and non-overlapping; the first heading
// occurrence wins.
type sectionRule struct {
	heading     *regexp.Regexp
	terminators *regexp.Regexp
}

func newSectionRule(heading string, terminators ...string) sectionRule {
	rule := sectionRule{
		heading: regexp.MustCompile(`(?i)\b(?:` + heading + `)\b\s*:?\s*`),
	}
	if len(terminators) > 0 {
		rule.terminators = regexp.MustCompile(`(?i)\b(?:` + strings.Join(terminators, "|") + `)\b`)
	}
	return rule
}

// capture returns the text between the first heading occurrence and the
// nearest following terminator heading, or the end of text. ok is false when
// the heading is absent.
func (r sectionRule) capture(text string) (string, bool) {
	loc := r.heading.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	block := text[loc[1]:]
	if r.terminators != nil {
		if t := r.terminators.FindStringIndex(block); t != nil {
			block = block[:t[0]]
		}
	}

	return strings.TrimSpace(block), true
}

// SectionExtractor splits normalized resume/JD text into semantic fields using
// an ordered table of heading rules with a keyword-vocabulary fallback.
type SectionExtractor struct {
	cfg SectionConfig

	objectiveRule  sectionRule
	skillsRule     sectionRule
	experienceRule sectionRule
	educationRule  sectionRule
	jdSkillsRule   sectionRule
}

func NewSectionExtractor(cfg SectionConfig) *SectionExtractor {
	return &SectionExtractor{
		cfg: cfg,

		objectiveRule:  newSectionRule(`Objective`, `Skills`, `Experience`, `Education`),
		skillsRule:     newSectionRule(`Skills`, `Experience`, `Education`),
		experienceRule: newSectionRule(`Experience`, `Education`),
		educationRule:  newSectionRule(`Education`, `Projects`, `Certifications`),
		jdSkillsRule:   newSectionRule(`Skills\s+(?:Required|Must-have)|Qualifications`, `Experience`),
	}
}

var (
	skillLabelRe = regexp.MustCompile(`[\w &]+:`)
	skillSplitRe = regexp.MustCompile(`[,\n]`)
	wordPairRe   = regexp.MustCompile(`\w+\s+\w+`)
	alphaPairRe  = regexp.MustCompile(`[A-Za-z]+\s+[A-Za-z]+`)
	roleLabelRe  = regexp.MustCompile(`(?im)^(?:Job\s+Title|Role|Position)\s*:\s*(.+)$`)
)

// ExtractResumeSections is a pure function over normalized text; running it
// twice on the same input yields identical sections.
func (e *SectionExtractor) ExtractResumeSections(text string) ResumeSections {
	var s ResumeSections

	if block, ok := e.objectiveRule.capture(text); ok {
		s.Objective = block
	}

	if block, ok := e.skillsRule.capture(text); ok {
		items := splitSkillItems(block)
		if len(items) > e.cfg.MaxSkills {
			items = items[:e.cfg.MaxSkills]
		}
		s.Skills = items
	} else {
		s.Skills = scanVocabulary(text, e.cfg.ResumeSkillVocab)
	}

	if block, ok := e.experienceRule.capture(text); ok {
		s.Experience = filterBullets(block, wordPairRe, e.cfg.MaxBullets)
	}

	if block, ok := e.educationRule.capture(text); ok {
		s.Education = filterBullets(block, alphaPairRe, e.cfg.MaxBullets)
	}

	return s
}

func (e *SectionExtractor) ExtractJDSections(text string) JDSections {
	var s JDSections

	s.RoleTitle = extractRoleTitle(text)

	if block, ok := e.jdSkillsRule.capture(text); ok {
		s.MustHaveSkills = dedupFold(splitSkillItems(block))
	} else {
		s.MustHaveSkills = scanVocabulary(text, e.cfg.JDSkillVocab)
	}

	runes := []rune(text)
	if len(runes) > 200 {
		runes = runes[:200]
	}
	s.Description = strings.TrimSpace(string(runes))

	return s
}

// splitSkillItems turns a skills block into individual items: inline
// "Label:" prefixes are stripped, items split on commas and newlines, and
// anything without an alphabetic character is dropped.
func splitSkillItems(block string) []string {
	block = skillLabelRe.ReplaceAllString(block, "")

	var items []string
	for _, part := range skillSplitRe.Split(block, -1) {
		part = strings.TrimSpace(part)
		if part == "" || !containsLetter(part) {
			continue
		}
		items = append(items, part)
	}
	return items
}

// scanVocabulary is the low-recall fallback: case-insensitive scan of the
// whole text for the reference vocabulary, deduplicated, in order of first
// appearance.
func scanVocabulary(text string, vocab []string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		pos  int
		term string
	}
	var hits []hit
	for _, term := range vocab {
		if pos := strings.Index(lower, strings.ToLower(term)); pos >= 0 {
			hits = append(hits, hit{pos: pos, term: term})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	skills := make([]string, 0, len(hits))
	for _, h := range hits {
		skills = append(skills, h.term)
	}
	return skills
}

func filterBullets(block string, wordFilter *regexp.Regexp, max int) []string {
	var bullets []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !wordFilter.MatchString(line) {
			continue
		}
		bullets = append(bullets, line)
		if len(bullets) == max {
			break
		}
	}
	return bullets
}

// extractRoleTitle takes the first line of JD text, preferring the value after
// a "Job Title:"/"Role:"/"Position:" label when one is present.
func extractRoleTitle(text string) string {
	first := text
	if i := strings.Index(text, "\n"); i >= 0 {
		first = text[:i]
	}
	first = strings.TrimSpace(first)

	if m := roleLabelRe.FindStringSubmatch(first); m != nil {
		return strings.TrimSpace(m[1])
	}
	if first != "" {
		return first
	}
	if m := roleLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func dedupFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
