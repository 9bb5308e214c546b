package models

import (
	"reflect"
	"testing"
)

func TestJobSkillListRoundTrip(t *testing.T) {
	var j Job
	j.SetSkillList([]string{" Python ", "SQL", "", "Power BI"})

	want := []string{"Python", "SQL", "Power BI"}
	if got := j.SkillList(); !reflect.DeepEqual(got, want) {
		t.Errorf("SkillList() = %v, want %v", got, want)
	}
}

func TestJobSkillListEmpty(t *testing.T) {
	var j Job
	if got := j.SkillList(); got != nil {
		t.Errorf("SkillList() = %v, want nil", got)
	}

	j.Skills = "  "
	if got := j.SkillList(); got != nil {
		t.Errorf("SkillList() = %v, want nil for blank storage", got)
	}
}
