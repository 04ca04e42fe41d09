package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hireflow/resume-ranker/internal/entity"
)

// jobRecord is the persisted shape of an analysis job.
type jobRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"uniqueIndex;not null"`
	PDFFilename    string    `gorm:"not null"`
	JobDescription string    `gorm:"type:text"`
	CreatedAt      time.Time
}

func (jobRecord) TableName() string { return "jobs" }

// candidateRecord is the persisted shape of one analyzed resume. List-valued
// fields are stored as JSON text so the schema works the same on sqlite and
// postgres.
type candidateRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID           uuid.UUID `gorm:"type:uuid;index;not null"`
	PageRange       string    `gorm:"not null"`
	Name            string
	Email           string
	Phone           string
	Summary         string `gorm:"type:text"`
	YearsExperience float64
	WorkExperience  string `gorm:"type:text"`
	Education       string `gorm:"type:text"`
	Skills          string `gorm:"type:text"`
	Certifications  string `gorm:"type:text"`
	FitScore        float64
	QualityScore    float64
	MatchedSkills   string `gorm:"type:text"`
	MissingSkills   string `gorm:"type:text"`
	Reasoning       string `gorm:"type:text"`
	RawExtractJSON  string `gorm:"type:text"`
	RawScoreJSON    string `gorm:"type:text"`
	ProcessedAt     time.Time
}

func (candidateRecord) TableName() string { return "candidates" }

func toJobRecord(j *entity.Job) *jobRecord {
	return &jobRecord{
		ID:             j.ID,
		Name:           j.Name,
		PDFFilename:    j.PDFFilename,
		JobDescription: j.JobDescription,
		CreatedAt:      j.CreatedAt,
	}
}

func fromJobRecord(r *jobRecord) *entity.Job {
	return &entity.Job{
		ID:             r.ID,
		Name:           r.Name,
		PDFFilename:    r.PDFFilename,
		JobDescription: r.JobDescription,
		CreatedAt:      r.CreatedAt,
	}
}

func toCandidateRecord(c *entity.Candidate) (*candidateRecord, error) {
	work, err := marshalList(c.WorkExperience)
	if err != nil {
		return nil, err
	}
	edu, err := marshalList(c.Education)
	if err != nil {
		return nil, err
	}
	skills, err := marshalList(c.Skills)
	if err != nil {
		return nil, err
	}
	certs, err := marshalList(c.Certifications)
	if err != nil {
		return nil, err
	}
	matched, err := marshalList(c.MatchedSkills)
	if err != nil {
		return nil, err
	}
	missing, err := marshalList(c.MissingSkills)
	if err != nil {
		return nil, err
	}
	return &candidateRecord{
		ID:              c.ID,
		JobID:           c.JobID,
		PageRange:       c.PageRange,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Summary:         c.Summary,
		YearsExperience: c.YearsExperience,
		WorkExperience:  work,
		Education:       edu,
		Skills:          skills,
		Certifications:  certs,
		FitScore:        c.FitScore,
		QualityScore:    c.QualityScore,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Reasoning:       c.Reasoning,
		RawExtractJSON:  c.RawExtractJSON,
		RawScoreJSON:    c.RawScoreJSON,
		ProcessedAt:     c.ProcessedAt,
	}, nil
}

func fromCandidateRecord(r *candidateRecord) (*entity.Candidate, error) {
	c := &entity.Candidate{
		ID:              r.ID,
		JobID:           r.JobID,
		PageRange:       r.PageRange,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Summary:         r.Summary,
		YearsExperience: r.YearsExperience,
		FitScore:        r.FitScore,
		QualityScore:    r.QualityScore,
		Reasoning:       r.Reasoning,
		RawExtractJSON:  r.RawExtractJSON,
		RawScoreJSON:    r.RawScoreJSON,
		ProcessedAt:     r.ProcessedAt,
	}
	if err := unmarshalList(r.WorkExperience, &c.WorkExperience); err != nil {
		return nil, err
	}
	if err := unmarshalList(r.Education, &c.Education); err != nil {
		return nil, err
	}
	if err := unmarshalList(r.Skills, &c.Skills); err != nil {
		return nil, err
	}
	if err := unmarshalList(r.Certifications, &c.Certifications); err != nil {
		return nil, err
	}
	if err := unmarshalList(r.MatchedSkills, &c.MatchedSkills); err != nil {
		return nil, err
	}
	if err := unmarshalList(r.MissingSkills, &c.MissingSkills); err != nil {
		return nil, err
	}
	return c, nil
}

func marshalList(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList(s string, out any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), out)
}
