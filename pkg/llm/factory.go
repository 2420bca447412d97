package llm

import (
	"strings"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"go.uber.org/zap"
)

// ProviderType LLM provider type
type ProviderType string

const (
	ProviderTypeOpenAI ProviderType = "openai" // OpenAI API
	ProviderTypeGroq   ProviderType = "groq"   // Groq (OpenAI-compatible)
	ProviderTypeOllama ProviderType = "ollama" // local Ollama (OpenAI-compatible /v1)
)

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	ollamaBaseURL = "http://localhost:11434/v1"
)

// NewProviderFromConfig builds the configured chat provider. Unknown provider
// names fall back to OpenAI with whatever base URL is configured.
func NewProviderFromConfig(cfg *config.Config) Provider {
	providerType := strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	timeout := time.Duration(cfg.LLMTimeoutSec) * time.Second

	baseURL := cfg.LLMBaseURL
	switch ProviderType(providerType) {
	case ProviderTypeGroq:
		if baseURL == "" {
			baseURL = groqBaseURL
		}
	case ProviderTypeOllama:
		if baseURL == "" {
			baseURL = ollamaBaseURL
		}
		// Ollama's OpenAI-compatible endpoint lives under /v1
		if !strings.Contains(baseURL, "/v1") {
			baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
		}
	}

	logger.Info("Creating LLM provider",
		zap.String("provider", providerType),
		zap.String("model", cfg.LLMModel),
		zap.String("baseURL", baseURL))

	return NewOpenAIProvider(cfg.LLMApiKey, baseURL, cfg.LLMModel, timeout, cfg.LLMMaxRetries)
}
