// Package export renders a job's ranked candidates as CSV or XLSX.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/entity"
	"github.com/hireflow/resume-ranker/internal/store"
)

// Service is a small façade over the repositories that produces export bytes.
type Service struct {
	jobs       store.JobRepository
	candidates store.CandidateRepository
	logger     *slog.Logger
}

func NewService(jobs store.JobRepository, candidates store.CandidateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobs: jobs, candidates: candidates, logger: logger}
}

var headers = []string{
	"Rank",
	"Pages",
	"Name",
	"Email",
	"Phone",
	"Years Experience",
	"Fit Score",
	"Quality Score",
	"Matched Skills",
	"Missing Skills",
	"Skills",
	"Certifications",
	"Reasoning",
	"Processed At",
}

// ranked loads the job's candidates (already ranked by the repository) and
// applies the filter.
func (s *Service) ranked(ctx context.Context, jobID uuid.UUID, filter Filter) ([]*entity.Candidate, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	cands, err := s.candidates.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return filter.Apply(cands), nil
}

func row(rank int, c *entity.Candidate) []string {
	return []string{
		fmt.Sprintf("%d", rank),
		c.PageRange,
		c.Name,
		c.Email,
		c.Phone,
		fmt.Sprintf("%.1f", c.YearsExperience),
		fmt.Sprintf("%.0f", c.FitScore),
		fmt.Sprintf("%.0f", c.QualityScore),
		strings.Join(c.MatchedSkills, ", "),
		strings.Join(c.MissingSkills, ", "),
		strings.Join(c.Skills, ", "),
		strings.Join(c.Certifications, ", "),
		c.Reasoning,
		c.ProcessedAt.Format("2006-01-02 15:04"),
	}
}

// ExportCSV returns the job's filtered ranking as CSV bytes.
func (s *Service) ExportCSV(ctx context.Context, jobID uuid.UUID, filter Filter) ([]byte, error) {
	start := time.Now()
	cands, err := s.ranked(ctx, jobID, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, common.StepError(common.ErrInternal, fmt.Errorf("csv header: %w", err))
	}
	for i, c := range cands {
		if err := w.Write(row(i+1, c)); err != nil {
			return nil, common.StepError(common.ErrInternal, fmt.Errorf("csv row %d: %w", i+1, err))
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, common.StepError(common.ErrInternal, fmt.Errorf("csv flush: %w", err))
	}

	s.logger.Info("export.csv.ok",
		"job_id", jobID.String(), "rows", len(cands),
		"elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

// ExportXLSX returns the job's filtered ranking as an XLSX workbook.
func (s *Service) ExportXLSX(ctx context.Context, jobID uuid.UUID, filter Filter) ([]byte, error) {
	start := time.Now()
	cands, err := s.ranked(ctx, jobID, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Candidates"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != sheet {
		_ = f.DeleteSheet(defaultSheet)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, c := range cands {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, i+1)
		write(2, c.PageRange)
		write(3, c.Name)
		write(4, c.Email)
		write(5, c.Phone)
		write(6, c.YearsExperience)
		write(7, c.FitScore)
		write(8, c.QualityScore)
		write(9, strings.Join(c.MatchedSkills, ", "))
		write(10, strings.Join(c.MissingSkills, ", "))
		write(11, strings.Join(c.Skills, ", "))
		write(12, strings.Join(c.Certifications, ", "))
		write(13, c.Reasoning)
		write(14, c.ProcessedAt.Format("2006-01-02 15:04"))
	}

	_ = f.SetColWidth(sheet, "A", "A", 6)  // rank
	_ = f.SetColWidth(sheet, "B", "B", 8)  // pages
	_ = f.SetColWidth(sheet, "C", "C", 24) // name
	_ = f.SetColWidth(sheet, "D", "D", 28) // email
	_ = f.SetColWidth(sheet, "E", "E", 16) // phone
	_ = f.SetColWidth(sheet, "F", "H", 10) // numbers
	_ = f.SetColWidth(sheet, "I", "L", 32) // skill lists
	_ = f.SetColWidth(sheet, "M", "M", 60) // reasoning
	_ = f.SetColWidth(sheet, "N", "N", 18) // timestamp

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.StepError(common.ErrInternal, fmt.Errorf("xlsx write: %w", err))
	}

	s.logger.Info("export.xlsx.ok",
		"job_id", jobID.String(), "rows", len(cands),
		"elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}
