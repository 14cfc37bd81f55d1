package providers

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama talks to an Ollama or LM Studio server over the OpenAI-compatible
// endpoint. No API key is required by default; REVIEWD_OLLAMA_API_KEY is
// honored for servers that demand one.
type Ollama struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewOllama creates a local-model completer. An empty baseURL falls back to
// the OLLAMA_HOST environment variable, then the default local port.
func NewOllama(model, baseURL string, timeout time.Duration) *Ollama {
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_HOST")
	}
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	// Accept any of host, host/v1, host/v1/chat/completions.
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	return &Ollama{
		apiKey: os.Getenv("REVIEWD_OLLAMA_API_KEY"),
		model:  model,
		url:    baseURL + "/v1/chat/completions",
		client: &http.Client{Timeout: timeout},
	}
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	return chatComplete(ctx, o.client, o.url, o.apiKey, o.model, req)
}
