package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hireflow/resume-ranker/internal/common"
)

// MistralConfig configures the Mistral OCR client.
type MistralConfig struct {
	APIKey  string
	BaseURL string        // default https://api.mistral.ai/v1
	Model   string        // e.g. "mistral-ocr-latest"
	Timeout time.Duration // whole-document budget
}

// MistralClient implements Client against the Mistral OCR API: upload the
// PDF, fetch a short-lived signed URL, then run OCR against that URL.
type MistralClient struct {
	cfg    MistralConfig
	http   *http.Client
	logger *slog.Logger
}

func NewMistralClient(cfg MistralConfig, logger *slog.Logger) *MistralClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "mistral-ocr-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MistralClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type uploadedFile struct {
	ID string `json:"id"`
}

type signedURL struct {
	URL string `json:"url"`
}

type ocrResponse struct {
	Pages []struct {
		Index    int    `json:"index"`
		Markdown string `json:"markdown"`
	} `json:"pages"`
}

// ProcessPDF runs the three-step OCR workflow and returns cleaned markdown
// per page. Any step failing maps to common.ErrOCR.
func (c *MistralClient) ProcessPDF(ctx context.Context, filename string, pdf []byte) ([]string, error) {
	if filename == "" || len(pdf) == 0 {
		return nil, common.StepError(common.ErrOCR, common.ErrInvalidInput)
	}

	reqID := uuid.New().String()
	start := time.Now()
	c.logger.Info("ocr.process.start",
		"req_id", reqID, "filename", filename, "bytes", len(pdf), "model", c.cfg.Model)

	fileID, err := c.upload(ctx, filename, pdf)
	if err != nil {
		c.logger.Error("ocr.upload.failed", "req_id", reqID, "error", err)
		return nil, common.StepError(common.ErrOCR, fmt.Errorf("upload: %w", err))
	}

	url, err := c.signedURL(ctx, fileID)
	if err != nil {
		c.logger.Error("ocr.signed_url.failed", "req_id", reqID, "file_id", fileID, "error", err)
		return nil, common.StepError(common.ErrOCR, fmt.Errorf("signed url: %w", err))
	}

	pages, err := c.runOCR(ctx, url)
	if err != nil {
		c.logger.Error("ocr.run.failed", "req_id", reqID, "file_id", fileID, "error", err)
		return nil, common.StepError(common.ErrOCR, err)
	}

	c.logger.Info("ocr.process.ok",
		"req_id", reqID, "pages", len(pages), "elapsed_ms", time.Since(start).Milliseconds())
	return pages, nil
}

func (c *MistralClient) upload(ctx context.Context, filename string, pdf []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("purpose", "ocr"); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(pdf); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/files", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	var up uploadedFile
	if err := c.do(req, &up); err != nil {
		return "", err
	}
	if up.ID == "" {
		return "", fmt.Errorf("upload returned no file id")
	}
	return up.ID, nil
}

func (c *MistralClient) signedURL(ctx context.Context, fileID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/files/%s/url?expiry=1", c.cfg.BaseURL, fileID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	var su signedURL
	if err := c.do(req, &su); err != nil {
		return "", err
	}
	if su.URL == "" {
		return "", fmt.Errorf("empty signed url")
	}
	return su.URL, nil
}

func (c *MistralClient) runOCR(ctx context.Context, documentURL string) ([]string, error) {
	body := map[string]any{
		"model": c.cfg.Model,
		"document": map[string]any{
			"type":         "document_url",
			"document_url": documentURL,
		},
		"include_image_base64": false,
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/ocr", bytes.NewReader(bs))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	var resp ocrResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Pages == nil {
		return nil, fmt.Errorf("ocr response missing pages")
	}

	pages := make([]string, len(resp.Pages))
	for i, p := range resp.Pages {
		idx := p.Index
		if idx < 0 || idx >= len(pages) {
			idx = i
		}
		pages[idx] = StripImagePlaceholders(p.Markdown)
	}
	return pages, nil
}

func (c *MistralClient) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("ocr.http.body_close_error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	c.logger.Debug("ocr.http.response",
		"url", req.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("auth error: status %d", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("rate limited: status %d", resp.StatusCode)
	case resp.StatusCode/100 != 2:
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
