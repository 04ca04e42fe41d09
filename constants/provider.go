package constants

import "strings"

// AIProvider selects the assistant backend for extraction and scoring.
type AIProvider string

const (
	ProviderOpenAI AIProvider = "openai"
	ProviderGemini AIProvider = "gemini"
)

// ParseProvider normalizes a provider label; unknown values fall back to OpenAI.
func ParseProvider(s string) AIProvider {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ProviderGemini):
		return ProviderGemini
	default:
		return ProviderOpenAI
	}
}
