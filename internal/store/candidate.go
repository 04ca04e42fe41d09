package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/entity"
)

// CandidateRepository manages analyzed candidates.
type CandidateRepository interface {
	Save(ctx context.Context, c *entity.Candidate) error
	// ListByJob returns the job's candidates ranked by fit score, then
	// quality score, both descending.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Candidate, error)
	DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
}

type candidateRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewCandidateRepository creates a candidate repository.
func NewCandidateRepository(db *gorm.DB, logger *slog.Logger) CandidateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &candidateRepository{db: db, logger: logger}
}

func (r *candidateRepository) Save(ctx context.Context, c *entity.Candidate) error {
	if c.JobID == uuid.Nil {
		return common.NewAppError("CANDIDATE_NO_JOB", "candidate must belong to a job", common.ErrInvalidInput)
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	rec, err := toCandidateRecord(c)
	if err != nil {
		return common.StepError(common.ErrPersistence, fmt.Errorf("encode candidate: %w", err))
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return common.StepError(common.ErrPersistence, fmt.Errorf("save candidate: %w", err))
	}

	r.logger.Info("store.candidate.save.ok",
		"candidate_id", c.ID, "job_id", c.JobID, "pages", c.PageRange, "fit_score", c.FitScore)
	return nil
}

func (r *candidateRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Candidate, error) {
	var recs []candidateRecord
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("fit_score DESC").
		Order("quality_score DESC").
		Find(&recs).Error
	if err != nil {
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("list candidates of job %s: %w", jobID, err))
	}

	out := make([]*entity.Candidate, 0, len(recs))
	for i := range recs {
		c, err := fromCandidateRecord(&recs[i])
		if err != nil {
			return nil, common.StepError(common.ErrPersistence, fmt.Errorf("decode candidate %s: %w", recs[i].ID, err))
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *candidateRepository) DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("job_id = ?", jobID).Delete(&candidateRecord{})
	if res.Error != nil {
		return 0, common.StepError(common.ErrPersistence, fmt.Errorf("delete candidates of job %s: %w", jobID, res.Error))
	}
	return res.RowsAffected, nil
}
