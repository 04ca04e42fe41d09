package entity

import (
	"time"

	"github.com/google/uuid"
)

// Experience is one work-history entry extracted from a resume.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one education entry extracted from a resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

// Candidate is one resume's processed result within a Job. Candidates are
// immutable once created and are removed only by cascading job deletion.
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	PageRange string    `json:"page_range"`

	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone,omitempty"`
	Summary         string       `json:"summary,omitempty"`
	YearsExperience float64      `json:"years_experience"`
	WorkExperience  []Experience `json:"work_experience"`
	Education       []Education  `json:"education"`
	Skills          []string     `json:"skills"`
	Certifications  []string     `json:"certifications,omitempty"`

	FitScore      float64  `json:"fit_score"`
	QualityScore  float64  `json:"quality_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Reasoning     string   `json:"reasoning"`

	RawExtractJSON string    `json:"raw_extract_json,omitempty"`
	RawScoreJSON   string    `json:"raw_score_json,omitempty"`
	ProcessedAt    time.Time `json:"processed_at"`
}
