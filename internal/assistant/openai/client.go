// Package openai implements the assistant contracts over an OpenAI-compatible
// chat/completions endpoint with JSON-schema constrained output.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hireflow/resume-ranker/internal/assistant"
	"github.com/hireflow/resume-ranker/internal/common"
)

// Config for the OpenAI client.
type Config struct {
	APIKey         string        // if empty, caller should have validated already
	BaseURL        string        // default https://api.openai.com/v1
	Model          string        // e.g. "gpt-4o-mini"
	Temperature    float32       // 0..2
	Timeout        time.Duration // per-call http timeout
	RequestsPerMin int           // outbound rate limit; 0 disables
}

type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 180 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), 1)
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logger,
	}
}

// Extract implements assistant.Extractor.
func (c *Client) Extract(ctx context.Context, req assistant.ExtractRequest) (assistant.ExtractedResume, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("assistant.extract.start",
		"req_id", rid, "model", c.cfg.Model, "pages", req.PageRange, "text_len", len(req.Text))

	schema := assistant.BuildResumeJSONSchema()
	raw, err := c.complete(ctx, assistant.BuildExtractionSystemPrompt(), req.Text, schema)
	if err != nil {
		c.logger.Error("assistant.extract.failed",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return assistant.ExtractedResume{}, raw, common.StepError(common.ErrExtraction, err)
	}

	cleaned, err := c.validateLenient(rid, schema, raw, assistant.SanitizeResumeJSON)
	if err != nil {
		return assistant.ExtractedResume{}, raw, common.StepError(common.ErrExtraction, err)
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
	user := assistant.BuildScoringUserPrompt(req)
	raw, err := c.complete(ctx, assistant.BuildScoringSystemPrompt(), user, schema)
	if err != nil {
		c.logger.Error("assistant.score.failed",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return assistant.ScoreResult{}, raw, common.StepError(common.ErrScoring, err)
	}

	cleaned, err := c.validateLenient(rid, schema, raw, assistant.SanitizeScoreJSON)
	if err != nil {
		return assistant.ScoreResult{}, raw, common.StepError(common.ErrScoring, err)
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

// validateLenient validates strictly first, then retries once after the
// lenient sanitize pass.
func (c *Client) validateLenient(rid string, schema map[string]any, raw []byte, sanitize func([]byte) ([]byte, []string, error)) ([]byte, error) {
	cleaned, touched, err := assistant.ValidateOrSanitize(schema, raw, sanitize)
	if err != nil {
		c.logger.Error("assistant.schema_validation_failed", "req_id", rid, "error", err)
		return nil, err
	}
	if len(touched) > 0 {
		c.logger.Warn("assistant.lenient_sanitize_applied", "req_id", rid, "touched", touched)
	}
	return cleaned, nil
}

// complete sends one chat/completions request and returns the fence-stripped
// message content.
func (c *Client) complete(ctx context.Context, system, user string, schema map[string]any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + assistant.MustJSON(schema)},
		},
	}

	raw, err := c.post(ctx, strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", body)
	if err != nil {
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return nil, fmt.Errorf("no choices in openai response")
	}
	return []byte(assistant.StripCodeFence(cc.Choices[0].Message.Content)), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("openai response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
