package models

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	BatchStatusQueued     BatchStatus = "queued"
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

type EvaluationStatus string

const (
	StatusPending   EvaluationStatus = "pending"
	StatusCompleted EvaluationStatus = "completed"
	StatusFailed    EvaluationStatus = "failed"
)

// Batch is one evaluation run: a single job description scored against N resumes.
type Batch struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID        uuid.UUID   `gorm:"type:uuid;not null" json:"job_id"`
	Status       BatchStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage *string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (Batch) TableName() string {
	return "batches"
}

// Evaluation is the persisted outcome for one (job, resume) pair inside a batch.
// Position preserves the caller's resume order; scores are nil until the item
// completes or when it fails.
type Evaluation struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"batch_id"`
	JobID            uuid.UUID        `gorm:"type:uuid;not null" json:"job_id"`
	ResumeDocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"resume_document_id"`
	Position         int              `gorm:"not null" json:"position"`
	Status           EvaluationStatus `gorm:"not null;default:'pending'" json:"status"`
	HardScore        *float64         `gorm:"type:decimal(5,2)" json:"hard_score,omitempty"`
	SoftScore        *float64         `gorm:"type:decimal(5,2)" json:"soft_score,omitempty"`
	TotalScore       *float64         `gorm:"type:decimal(5,2)" json:"total_score,omitempty"`
	Verdict          *string          `gorm:"type:text" json:"verdict,omitempty"`
	MatchedSkills    *string          `gorm:"type:text" json:"matched_skills,omitempty"`
	MissingSkills    *string          `gorm:"type:text" json:"missing_skills,omitempty"`
	Suggestion       *string          `gorm:"type:text" json:"suggestion,omitempty"`
	ObjectiveSnippet *string          `gorm:"type:text" json:"objective_snippet,omitempty"`
	ErrorKind        *string          `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage     *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
