// Package pipeline runs the per-group analysis chain: group text assembly,
// extraction, scoring, persistence. A failing group is recorded and skipped;
// the remaining groups still run.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hireflow/resume-ranker/constants"
	"github.com/hireflow/resume-ranker/internal/assistant"
	"github.com/hireflow/resume-ranker/internal/boundary"
	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/entity"
	"github.com/hireflow/resume-ranker/internal/store"
)

// GroupResult is the outcome of one resume group.
type GroupResult struct {
	GroupID   int
	PageRange string
	Status    constants.GroupStatus
	Step      constants.PipelineStep // step the failure is attributed to; empty on success
	Candidate *entity.Candidate      // nil on failure
	Err       error                  // nil on success
	Elapsed   time.Duration
}

// Summary aggregates a whole run.
type Summary struct {
	JobID     uuid.UUID
	Succeeded int
	Failed    int
	Results   []GroupResult
}

// ProgressFunc is called after each group finishes, successful or not.
type ProgressFunc func(completed, total int, last GroupResult)

// Orchestrator drives the analysis of all resume groups of one job.
type Orchestrator struct {
	extractor  assistant.Extractor
	scorer     assistant.Scorer
	candidates store.CandidateRepository
	logger     *slog.Logger
	now        func() time.Time
	workers    int
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(extractor assistant.Extractor, scorer assistant.Scorer, candidates store.CandidateRepository, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		extractor:  extractor,
		scorer:     scorer,
		candidates: candidates,
		logger:     logger,
		now:        time.Now,
		workers:    1,
	}
}

// SetWorkers bounds how many groups run at once. Groups are independent, so
// n > 1 fans them out; progress then arrives in completion order while the
// summary stays in group order. Values below 1 are treated as sequential.
func (o *Orchestrator) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	o.workers = n
}

// Run processes the job's groups in ascending group order. texts is the
// per-page OCR markdown, indexed by 0-based page. Context cancellation stops
// the run between groups; the summary then covers the groups that finished.
func (o *Orchestrator) Run(ctx context.Context, job *entity.Job, groups []boundary.ResumeGroup, texts []string, progress ProgressFunc) (*Summary, error) {
	if job == nil {
		return nil, common.NewAppError("PIPELINE_NO_JOB", "job is required", common.ErrInvalidInput)
	}

	start := o.now()
	o.logger.Info("pipeline.run.start",
		"job_id", job.ID, "job_name", job.Name, "groups", len(groups), "workers", o.workers)

	var (
		summary *Summary
		err     error
	)
	if o.workers > 1 && len(groups) > 1 {
		summary, err = o.runConcurrent(ctx, job, groups, texts, progress)
	} else {
		summary, err = o.runSequential(ctx, job, groups, texts, progress)
	}
	if err != nil {
		return summary, err
	}

	o.logger.Info("pipeline.run.ok",
		"job_id", job.ID, "succeeded", summary.Succeeded, "failed", summary.Failed,
		"elapsed_ms", time.Since(start).Milliseconds())
	return summary, nil
}

func (o *Orchestrator) runSequential(ctx context.Context, job *entity.Job, groups []boundary.ResumeGroup, texts []string, progress ProgressFunc) (*Summary, error) {
	summary := &Summary{JobID: job.ID, Results: make([]GroupResult, 0, len(groups))}
	for i, g := range groups {
		select {
		case <-ctx.Done():
			o.logger.Warn("pipeline.run.cancelled",
				"job_id", job.ID, "completed", len(summary.Results), "total", len(groups))
			return summary, ctx.Err()
		default:
		}

		res := o.processGroup(ctx, job, g, texts)
		summary.Results = append(summary.Results, res)
		if res.Status == constants.GroupStatusSucceeded {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		if progress != nil {
			progress(i+1, len(groups), res)
		}
	}
	return summary, nil
}

// runConcurrent fans groups out over the worker bound. The results slice is
// indexed by group position so the summary keeps group order even though
// completion order differs.
func (o *Orchestrator) runConcurrent(ctx context.Context, job *entity.Job, groups []boundary.ResumeGroup, texts []string, progress ProgressFunc) (*Summary, error) {
	results := make([]GroupResult, len(groups))
	indices := make(chan int)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				res := o.processGroup(ctx, job, groups[i], texts)
				results[i] = res

				mu.Lock()
				completed++
				done := completed
				mu.Unlock()
				if progress != nil {
					progress(done, len(groups), res)
				}
			}
		}()
	}

feed:
	for i := range groups {
		select {
		case <-ctx.Done():
			break feed
		case indices <- i:
		}
	}
	close(indices)
	wg.Wait()

	summary := &Summary{JobID: job.ID}
	for _, res := range results {
		if res.Status == "" {
			continue // never dispatched, run was cancelled
		}
		summary.Results = append(summary.Results, res)
		if res.Status == constants.GroupStatusSucceeded {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	if ctx.Err() != nil {
		o.logger.Warn("pipeline.run.cancelled",
			"job_id", job.ID, "completed", len(summary.Results), "total", len(groups))
		return summary, ctx.Err()
	}
	return summary, nil
}

func (o *Orchestrator) processGroup(ctx context.Context, job *entity.Job, g boundary.ResumeGroup, texts []string) GroupResult {
	pages := g.PageRange()
	start := o.now()
	o.logger.Info("pipeline.group.start", "job_id", job.ID, "group", g.ID, "pages", pages)

	fail := func(step constants.PipelineStep, err error) GroupResult {
		o.logger.Error("pipeline.group.failed",
			"job_id", job.ID, "group", g.ID, "pages", pages, "step", step,
			"error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return GroupResult{
			GroupID:   g.ID,
			PageRange: pages,
			Status:    constants.GroupStatusFailed,
			Step:      step,
			Err:       err,
			Elapsed:   time.Since(start),
		}
	}

	text := boundary.GroupText(g, texts)
	if text == "" {
		return fail(constants.StepExtraction,
			common.StepError(common.ErrExtraction, fmt.Errorf("group %d has no text", g.ID)))
	}

	resume, rawExtract, err := o.extractor.Extract(ctx, assistant.ExtractRequest{Text: text, PageRange: pages})
	if err != nil {
		return fail(constants.StepExtraction, err)
	}

	score, rawScore, err := o.scorer.Score(ctx, assistant.ScoreRequest{
		Resume:         resume,
		JobDescription: job.JobDescription,
		CurrentDate:    o.now().Format("02/01/2006"),
		PageRange:      pages,
	})
	if err != nil {
		return fail(constants.StepScoring, err)
	}

	candidate := buildCandidate(job.ID, pages, resume, score, rawExtract, rawScore, o.now())
	if err := o.candidates.Save(ctx, candidate); err != nil {
		return fail(constants.StepPersistence, err)
	}

	o.logger.Info("pipeline.group.ok",
		"job_id", job.ID, "group", g.ID, "pages", pages,
		"name", candidate.Name, "fit_score", candidate.FitScore,
		"elapsed_ms", time.Since(start).Milliseconds())
	return GroupResult{
		GroupID:   g.ID,
		PageRange: pages,
		Status:    constants.GroupStatusSucceeded,
		Candidate: candidate,
		Elapsed:   time.Since(start),
	}
}

func buildCandidate(jobID uuid.UUID, pages string, resume assistant.ExtractedResume, score assistant.ScoreResult, rawExtract, rawScore []byte, now time.Time) *entity.Candidate {
	return &entity.Candidate{
		ID:              uuid.New(),
		JobID:           jobID,
		PageRange:       pages,
		Name:            resume.Name,
		Email:           resume.Email,
		Phone:           resume.Phone,
		Summary:         resume.Summary,
		YearsExperience: resume.YearsExperience,
		WorkExperience:  resume.Experience,
		Education:       resume.Education,
		Skills:          resume.Skills,
		Certifications:  resume.Certifications,
		FitScore:        score.FitScore,
		QualityScore:    score.QualityScore,
		MatchedSkills:   score.MatchedSkills,
		MissingSkills:   score.MissingSkills,
		Reasoning:       score.Reasoning,
		RawExtractJSON:  compactJSON(rawExtract),
		RawScoreJSON:    compactJSON(rawScore),
		ProcessedAt:     now,
	}
}

// compactJSON normalizes stored provenance; invalid input is kept verbatim.
func compactJSON(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(b)
}
