package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/entity"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(common.DatabaseConfig{Path: ":memory:"}, nil)
	require.NoError(t, err)
	return db
}

func sampleCandidate(jobID uuid.UUID, pages string, fit, quality float64) *entity.Candidate {
	return &entity.Candidate{
		JobID:           jobID,
		PageRange:       pages,
		Name:            "Jane Roe",
		Email:           "jane@example.com",
		YearsExperience: 6,
		WorkExperience: []entity.Experience{
			{Title: "Engineer", Company: "Acme", Start: "2019", End: "2024"},
		},
		Education:     []entity.Education{{Degree: "BSc", Institution: "MIT", Year: "2018"}},
		Skills:        []string{"Go", "SQL"},
		FitScore:      fit,
		QualityScore:  quality,
		MatchedSkills: []string{"Go"},
		MissingSkills: []string{"Kubernetes"},
		Reasoning:     "good overlap",
		ProcessedAt:   time.Now(),
	}
}

func TestJobCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	jobs := NewJobRepository(db, nil)
	ctx := context.Background()

	job, err := jobs.Create(ctx, "backend-aug", "resumes.pdf", "Go backend engineer")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, job.ID)

	got, err := jobs.GetByName(ctx, "backend-aug")
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, "resumes.pdf", got.PDFFilename)
	assert.Equal(t, "Go backend engineer", got.JobDescription)

	byID, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Name, byID.Name)
}

func TestJobCreateDuplicateNameReturnsExisting(t *testing.T) {
	db := openTestDB(t)
	jobs := NewJobRepository(db, nil)
	ctx := context.Background()

	first, err := jobs.Create(ctx, "same-name", "a.pdf", "jd")
	require.NoError(t, err)
	second, err := jobs.Create(ctx, "same-name", "b.pdf", "other jd")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "a.pdf", second.PDFFilename)

	all, err := jobs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestJobGetMissingReturnsNotFound(t *testing.T) {
	db := openTestDB(t)
	jobs := NewJobRepository(db, nil)

	_, err := jobs.GetByName(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = jobs.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCandidateRoundTrip(t *testing.T) {
	db := openTestDB(t)
	jobs := NewJobRepository(db, nil)
	cands := NewCandidateRepository(db, nil)
	ctx := context.Background()

	job, err := jobs.Create(ctx, "rt", "x.pdf", "jd")
	require.NoError(t, err)

	in := sampleCandidate(job.ID, "1-2", 82, 74)
	require.NoError(t, cands.Save(ctx, in))

	out, err := cands.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, "1-2", got.PageRange)
	assert.Equal(t, in.WorkExperience, got.WorkExperience)
	assert.Equal(t, in.Education, got.Education)
	assert.Equal(t, in.Skills, got.Skills)
	assert.Equal(t, in.MatchedSkills, got.MatchedSkills)
	assert.Equal(t, in.MissingSkills, got.MissingSkills)
	assert.Equal(t, 82.0, got.FitScore)
}

func TestCandidateListRanksByFitThenQuality(t *testing.T) {
	db := openTestDB(t)
	jobs := NewJobRepository(db, nil)
	cands := NewCandidateRepository(db, nil)
	ctx := context.Background()

	job, err := jobs.Create(ctx, "rank", "x.pdf", "jd")
	require.NoError(t, err)

	require.NoError(t, cands.Save(ctx, sampleCandidate(job.ID, "1", 70, 90)))
	require.NoError(t, cands.Save(ctx, sampleCandidate(job.ID, "2", 90, 50)))
	require.NoError(t, cands.Save(ctx, sampleCandidate(job.ID, "3", 70, 95)))

	out, err := cands.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "2", out[0].PageRange)
	assert.Equal(t, "3", out[1].PageRange)
	assert.Equal(t, "1", out[2].PageRange)
}

func TestJobDeleteCascadesOnlyItsCandidates(t *testing.T) {
	db := openTestDB(t)
	jobs := NewJobRepository(db, nil)
	cands := NewCandidateRepository(db, nil)
	ctx := context.Background()

	doomed, err := jobs.Create(ctx, "doomed", "a.pdf", "jd")
	require.NoError(t, err)
	kept, err := jobs.Create(ctx, "kept", "b.pdf", "jd")
	require.NoError(t, err)

	require.NoError(t, cands.Save(ctx, sampleCandidate(doomed.ID, "1", 50, 50)))
	require.NoError(t, cands.Save(ctx, sampleCandidate(doomed.ID, "2", 60, 60)))
	require.NoError(t, cands.Save(ctx, sampleCandidate(kept.ID, "1", 70, 70)))

	require.NoError(t, jobs.Delete(ctx, doomed.ID))

	_, err = jobs.GetByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	gone, err := cands.ListByJob(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	remaining, err := cands.ListByJob(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestJobDeleteMissingReturnsNotFound(t *testing.T) {
	db := openTestDB(t)
	jobs := NewJobRepository(db, nil)
	err := jobs.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCandidateSaveRequiresJob(t *testing.T) {
	db := openTestDB(t)
	cands := NewCandidateRepository(db, nil)
	err := cands.Save(context.Background(), &entity.Candidate{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
