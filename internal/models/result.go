package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Kind         string `json:"kind"`
}

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type EvaluateRequest struct {
	JobID             string   `json:"job_id" validate:"required,uuid"`
	ResumeDocumentIDs []string `json:"resume_document_ids" validate:"required"`
}

type EvaluateResponse struct {
	BatchID string `json:"batch_id"`
	Status  string `json:"status"`
}

// SkillPair records which resume skill satisfied a JD must-have skill.
type SkillPair struct {
	JDSkill     string `json:"jd_skill"`
	ResumeSkill string `json:"resume_skill"`
}

// ResultRow is one line of the batch result table. Failed items carry an error
// marker instead of scores.
type ResultRow struct {
	ResumeFile    string      `json:"resume_file"`
	TotalScore    *float64    `json:"total_score,omitempty"`
	Verdict       string      `json:"verdict,omitempty"`
	MatchedSkills []SkillPair `json:"matched_skills,omitempty"`
	MissingSkills []string    `json:"missing_skills,omitempty"`
	Suggestion    string      `json:"suggestion,omitempty"`
	Objective     string      `json:"objective,omitempty"`
	Error         string      `json:"error,omitempty"`
}

type BatchResultResponse struct {
	BatchID  string      `json:"batch_id"`
	JobTitle string      `json:"job_title"`
	Status   string      `json:"status"`
	Rows     []ResultRow `json:"rows"`
}

type ReportRequest struct {
	JobID            string `json:"job_id" validate:"required,uuid"`
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
}

type SearchRequest struct {
	Text  string `json:"text" validate:"required"`
	Limit int    `json:"limit"`
}

type SearchHit struct {
	EvaluationID string  `json:"evaluation_id"`
	ResumeFile   string  `json:"resume_file"`
	Verdict      string  `json:"verdict"`
	TotalScore   float64 `json:"total_score"`
	Similarity   float32 `json:"similarity"`
}
