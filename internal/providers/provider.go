package providers

import (
	"context"
	"fmt"
	"time"

	"reviewd/internal/config"
)

// CompletionRequest carries one prompt pair to the model.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// CompletionResponse holds the raw model output.
type CompletionResponse struct {
	Content    string
	TokensUsed int
}

// Completer is the model-backend abstraction.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	Name() string
}

// New creates a completer from the AI section of the config.
func New(cfg config.AIConfig) (Completer, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	switch cfg.Provider {
	case "ollama", "lmstudio":
		return NewOllama(cfg.Model, cfg.BaseURL, timeout), nil
	case "openai":
		return NewOpenAI(cfg.Model, cfg.BaseURL, timeout)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
