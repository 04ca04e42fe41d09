// Package cli wires the interactive resume-ranker command set: process a PDF
// batch, browse stored jobs, export rankings.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"github.com/hireflow/resume-ranker/constants"
	"github.com/hireflow/resume-ranker/internal/assistant"
	"github.com/hireflow/resume-ranker/internal/assistant/gemini"
	"github.com/hireflow/resume-ranker/internal/assistant/openai"
	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/export"
	"github.com/hireflow/resume-ranker/internal/store"
)

// App carries the wired dependencies shared by all commands.
type App struct {
	Config     *common.Config
	Logger     *slog.Logger
	DB         *gorm.DB
	Jobs       store.JobRepository
	Candidates store.CandidateRepository
	Exports    *export.Service
}

func newLogger(debug, jsonLogs bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// newApp loads configuration, opens the store and builds the repositories.
func newApp(debug, jsonLogs bool) (*App, error) {
	logger := newLogger(debug, jsonLogs)
	cfg := common.LoadConfig()

	db, err := store.Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	jobs := store.NewJobRepository(db, logger)
	candidates := store.NewCandidateRepository(db, logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Jobs:       jobs,
		Candidates: candidates,
		Exports:    export.NewService(jobs, candidates, logger),
	}, nil
}

// newAssistants builds the extraction and scoring backends for the configured
// provider. Both roles are served by the same client.
func (a *App) newAssistants(ctx context.Context) (assistant.Extractor, assistant.Scorer, error) {
	ai := a.Config.AI
	switch ai.Provider {
	case constants.ProviderGemini:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         ai.GeminiKey,
			Model:          ai.GeminiModel,
			Temperature:    ai.Temperature,
			Timeout:        ai.Timeout,
			RequestsPerMin: ai.RequestsPerMin,
		}, a.Logger)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, c, nil
	default:
		c := openai.NewClient(openai.Config{
			APIKey:         ai.OpenAIKey,
			BaseURL:        ai.OpenAIBase,
			Model:          ai.OpenAIModel,
			Temperature:    ai.Temperature,
			Timeout:        ai.Timeout,
			RequestsPerMin: ai.RequestsPerMin,
		}, a.Logger)
		return c, c, nil
	}
}
