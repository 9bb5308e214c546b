package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job is a posted role: title, the full JD text, and the recruiter-declared
// must-have skills (comma separated in storage).
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Skills      string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

func (j *Job) SkillList() []string {
	if strings.TrimSpace(j.Skills) == "" {
		return nil
	}

	parts := strings.Split(j.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

func (j *Job) SetSkillList(skills []string) {
	trimmed := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	j.Skills = strings.Join(trimmed, ",")
}
