package llm

import "context"

// Message a single chat message
type Message struct {
	Role    string
	Content string
}

// ChatRequest parameters for one chat completion
type ChatRequest struct {
	System      string
	Messages    []Message
	Temperature float32
	MaxTokens   int
	Model       string
}

// Provider unified chat-completion interface. All providers (OpenAI, Groq,
// Ollama) implement this; callers treat a failure as "fall back to rules".
type Provider interface {
	// Chat executes a non-streaming chat completion and returns the raw text
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// Func adapts a plain function to the Provider interface, mainly for tests
type Func func(ctx context.Context, req ChatRequest) (string, error)

func (f Func) Chat(ctx context.Context, req ChatRequest) (string, error) {
	return f(ctx, req)
}
