package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hireflow/resume-ranker/constants"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	AI       AIConfig
	Export   ExportConfig
}

// DatabaseConfig holds store-related configuration.
// Path is the SQLite file used by default; a non-empty DSN switches the
// store to Postgres.
type DatabaseConfig struct {
	Path string
	DSN  string
}

// OCRConfig holds OCR service configuration
type OCRConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// AIConfig holds assistant (extraction/scoring) configuration
type AIConfig struct {
	Provider       constants.AIProvider
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBase     string
	GeminiKey      string
	GeminiModel    string
	Temperature    float32
	Timeout        time.Duration
	RequestsPerMin int
}

// ExportConfig holds export defaults
type ExportConfig struct {
	OutputDir string
}

// LoadConfig loads configuration from the environment, reading a .env file
// first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("RESUME_DB_PATH", "resumes.db"),
			DSN:  getEnv("RESUME_DB_DSN", ""),
		},
		OCR: OCRConfig{
			APIKey:  getEnv("MISTRAL_API_KEY", ""),
			BaseURL: getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			Model:   getEnv("OCR_MODEL", "mistral-ocr-latest"),
			Timeout: getEnvAsDuration("OCR_TIMEOUT", 120*time.Second),
		},
		AI: AIConfig{
			Provider:       constants.ParseProvider(getEnv("AI_PROVIDER", "openai")),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBase:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GeminiKey:      getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:    getEnvAsFloat32("AI_TEMPERATURE", 0.0),
			Timeout:        getEnvAsDuration("AI_TIMEOUT", 180*time.Second),
			RequestsPerMin: getEnvAsInt("AI_REQUESTS_PER_MIN", 30),
		},
		Export: ExportConfig{
			OutputDir: getEnv("EXPORT_DIR", "."),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks that configuration required for a processing run is present.
func (c *Config) Validate() error {
	if c.OCR.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "MISTRAL_API_KEY is required", ErrInvalidInput)
	}
	switch c.AI.Provider {
	case constants.ProviderGemini:
		if c.AI.GeminiKey == "" {
			return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
		}
	default:
		if c.AI.OpenAIKey == "" {
			return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
		}
	}
	return nil
}
