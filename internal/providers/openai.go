package providers

import (
	"context"
	"net/http"
	"os"
	"time"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI talks to the hosted OpenAI API.
type OpenAI struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewOpenAI creates a hosted completer. OPENAI_API_KEY must be set.
func NewOpenAI(model, baseURL string, timeout time.Duration) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
	}
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey: key,
		model:  model,
		url:    baseURL,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	return chatComplete(ctx, o.client, o.url, o.apiKey, o.model, req)
}
