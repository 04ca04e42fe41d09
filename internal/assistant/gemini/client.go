// Package gemini implements the assistant contracts over the Gemini API
// using the google.golang.org/genai SDK.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/hireflow/resume-ranker/internal/assistant"
	"github.com/hireflow/resume-ranker/internal/common"
)

// Config for the Gemini client.
type Config struct {
	APIKey         string
	Model          string // e.g. "gemini-2.5-flash"
	Temperature    float32
	Timeout        time.Duration // per-call deadline
	RequestsPerMin int           // outbound rate limit; 0 disables
}

type Client struct {
	client  *genai.Client
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 180 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), 1)
	}
	return &Client{client: cli, cfg: cfg, limiter: limiter, logger: logger}, nil
}

// Extract implements assistant.Extractor.
func (c *Client) Extract(ctx context.Context, req assistant.ExtractRequest) (assistant.ExtractedResume, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("assistant.extract.start",
		"req_id", rid, "model", c.cfg.Model, "pages", req.PageRange, "text_len", len(req.Text))

	schema := assistant.BuildResumeJSONSchema()
	raw, err := c.generate(ctx, assistant.BuildExtractionSystemPrompt(), req.Text, schema)
	if err != nil {
		c.logger.Error("assistant.extract.failed",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return assistant.ExtractedResume{}, raw, common.StepError(common.ErrExtraction, err)
	}

	cleaned, touched, err := assistant.ValidateOrSanitize(schema, raw, assistant.SanitizeResumeJSON)
	if err != nil {
		c.logger.Error("assistant.schema_validation_failed", "req_id", rid, "error", err)
		return assistant.ExtractedResume{}, raw, common.StepError(common.ErrExtraction, err)
	}
	if len(touched) > 0 {
		c.logger.Warn("assistant.lenient_sanitize_applied", "req_id", rid, "touched", touched)
	}

	var out assistant.ExtractedResume
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return assistant.ExtractedResume{}, cleaned, common.StepError(common.ErrExtraction, fmt.Errorf("unmarshal resume: %w", err))
	}

	c.logger.Info("assistant.extract.ok",
		"req_id", rid, "name", out.Name, "skills", len(out.Skills),
		"elapsed_ms", time.Since(start).Milliseconds())
	return out, cleaned, nil
}

// Score implements assistant.Scorer.
func (c *Client) Score(ctx context.Context, req assistant.ScoreRequest) (assistant.ScoreResult, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("assistant.score.start",
		"req_id", rid, "model", c.cfg.Model, "pages", req.PageRange, "jd_len", len(req.JobDescription))

	schema := assistant.BuildScoreJSONSchema()
	raw, err := c.generate(ctx, assistant.BuildScoringSystemPrompt(), assistant.BuildScoringUserPrompt(req), schema)
	if err != nil {
		c.logger.Error("assistant.score.failed",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return assistant.ScoreResult{}, raw, common.StepError(common.ErrScoring, err)
	}

	cleaned, touched, err := assistant.ValidateOrSanitize(schema, raw, assistant.SanitizeScoreJSON)
	if err != nil {
		c.logger.Error("assistant.schema_validation_failed", "req_id", rid, "error", err)
		return assistant.ScoreResult{}, raw, common.StepError(common.ErrScoring, err)
	}
	if len(touched) > 0 {
		c.logger.Warn("assistant.lenient_sanitize_applied", "req_id", rid, "touched", touched)
	}

	var out assistant.ScoreResult
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return assistant.ScoreResult{}, cleaned, common.StepError(common.ErrScoring, fmt.Errorf("unmarshal score: %w", err))
	}

	c.logger.Info("assistant.score.ok",
		"req_id", rid, "fit_score", out.FitScore, "quality_score", out.QualityScore,
		"elapsed_ms", time.Since(start).Milliseconds())
	return out, cleaned, nil
}

// generate sends one GenerateContent call constrained to JSON output and
// returns the fence-stripped reply text.
func (c *Client) generate(ctx context.Context, system, user string, schema map[string]any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	temp := c.cfg.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:       &temp,
		ResponseMIMEType:  "application/json",
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	}

	prompt := user + "\n\nReturn ONLY JSON that matches this JSON Schema:\n" + assistant.MustJSON(schema)
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini returned nil response")
	}
	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no text content in gemini response")
	}
	return []byte(assistant.StripCodeFence(text)), nil
}
