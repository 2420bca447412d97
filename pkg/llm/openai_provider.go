package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIProvider chat-completion client for OpenAI-compatible APIs
// (OpenAI, Groq, and Ollama's /v1 endpoint all speak this protocol).
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
}

// NewOpenAIProvider creates a provider against an OpenAI-compatible endpoint.
// baseURL may be empty for api.openai.com. Every call is bounded by timeout
// and retried up to maxRetries times on transient failures.
func NewOpenAIProvider(apiKey, baseURL, model string, timeout time.Duration, maxRetries int) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

// Chat executes a chat completion with timeout and bounded retry. Rate limits
// and 5xx responses are retried with exponential backoff; 4xx errors are not.
func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	var lastErr error
	backoff := 500 * time.Millisecond
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		resp, err := p.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:       model,
			Messages:    messages,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		})
		cancel()

		if err == nil {
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("llm: empty completion response")
			}
			return strings.TrimSpace(resp.Choices[0].Message.Content), nil
		}

		lastErr = err
		if !isRetryable(err) {
			break
		}
		logger.Warn("llm call failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return "", lastErr
}

// isRetryable reports whether an error is transient: rate limits, server
// errors, timeouts and network failures. Client errors are permanent.
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 0 || reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return false
}
