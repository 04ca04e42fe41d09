package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/entity"
)

// JobRepository manages analysis jobs.
type JobRepository interface {
	// Create stores a new job. If a job with the same name already exists,
	// the existing job is returned instead of an error.
	Create(ctx context.Context, name, pdfFilename, jobDescription string) (*entity.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	GetByName(ctx context.Context, name string) (*entity.Job, error)
	// List returns all jobs, newest first.
	List(ctx context.Context) ([]*entity.Job, error)
	// Delete removes a job and every candidate stored under it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewJobRepository creates a job repository.
func NewJobRepository(db *gorm.DB, logger *slog.Logger) JobRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &jobRepository{db: db, logger: logger}
}

func (r *jobRepository) Create(ctx context.Context, name, pdfFilename, jobDescription string) (*entity.Job, error) {
	if name == "" {
		return nil, common.NewAppError("JOB_NAME_EMPTY", "job name is required", common.ErrInvalidInput)
	}

	var existing jobRecord
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		r.logger.Info("store.job.create.exists", "name", name, "job_id", existing.ID)
		return fromJobRecord(&existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("lookup job %q: %w", name, err))
	}

	rec := &jobRecord{
		ID:             uuid.New(),
		Name:           name,
		PDFFilename:    pdfFilename,
		JobDescription: jobDescription,
		CreatedAt:      time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("create job %q: %w", name, err))
	}

	r.logger.Info("store.job.create.ok", "name", name, "job_id", rec.ID)
	return fromJobRecord(rec), nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var rec jobRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewAppError("JOB_NOT_FOUND", fmt.Sprintf("job %s not found", id), common.ErrNotFound)
		}
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("get job %s: %w", id, err))
	}
	return fromJobRecord(&rec), nil
}

func (r *jobRepository) GetByName(ctx context.Context, name string) (*entity.Job, error) {
	var rec jobRecord
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewAppError("JOB_NOT_FOUND", fmt.Sprintf("job %q not found", name), common.ErrNotFound)
		}
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("get job %q: %w", name, err))
	}
	return fromJobRecord(&rec), nil
}

func (r *jobRepository) List(ctx context.Context) ([]*entity.Job, error) {
	var recs []jobRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("list jobs: %w", err))
	}
	jobs := make([]*entity.Job, 0, len(recs))
	for i := range recs {
		jobs = append(jobs, fromJobRecord(&recs[i]))
	}
	return jobs, nil
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec jobRecord
		if err := tx.Where("id = ?", id).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewAppError("JOB_NOT_FOUND", fmt.Sprintf("job %s not found", id), common.ErrNotFound)
			}
			return fmt.Errorf("get job %s: %w", id, err)
		}
		if err := tx.Where("job_id = ?", id).Delete(&candidateRecord{}).Error; err != nil {
			return fmt.Errorf("delete candidates of job %s: %w", id, err)
		}
		if err := tx.Delete(&jobRecord{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete job %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return common.StepError(common.ErrPersistence, err)
	}

	r.logger.Info("store.job.delete.ok", "job_id", id)
	return nil
}
