// Package assistant defines the request/response contracts for the two
// external AI steps, extraction (free text -> structured resume) and
// scoring (structured resume + job description -> fit assessment), plus the
// JSON hygiene shared by their backends. The pipeline depends only on the
// narrow Extractor and Scorer interfaces so it can run against deterministic
// fakes in tests.
package assistant

import (
	"context"

	"github.com/hireflow/resume-ranker/internal/entity"
)

// ExtractRequest carries one resume group's concatenated OCR text.
type ExtractRequest struct {
	Text      string
	PageRange string // for logging only, e.g. "3-5"
}

// ExtractedResume is the normalized shape we want from the extraction step.
type ExtractedResume struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone,omitempty"`
	Summary         string              `json:"summary,omitempty"`
	YearsExperience float64             `json:"years_experience,omitempty"`
	Experience      []entity.Experience `json:"experience"`
	Education       []entity.Education  `json:"education"`
	Skills          []string            `json:"skills"`
	Certifications  []string            `json:"certifications,omitempty"`
}

// ScoreRequest carries the extracted resume plus the job context. CurrentDate
// anchors duration math ("3 years ago") for the scoring assistant.
type ScoreRequest struct {
	Resume         ExtractedResume
	JobDescription string
	CurrentDate    string // DD/MM/YYYY
	PageRange      string // for logging only
}

// ScoreResult is the normalized shape we want from the scoring step.
type ScoreResult struct {
	FitScore      float64  `json:"fit_score"`     // 0..100 against the job description
	QualityScore  float64  `json:"quality_score"` // 0..100 overall resume quality
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Reasoning     string   `json:"reasoning"`
}

// Extractor is the extraction-step interface the pipeline depends on.
// The raw validated JSON is returned alongside for provenance storage.
type Extractor interface {
	Extract(ctx context.Context, req ExtractRequest) (ExtractedResume, []byte, error)
}

// Scorer is the scoring-step interface the pipeline depends on.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (ScoreResult, []byte, error)
}
