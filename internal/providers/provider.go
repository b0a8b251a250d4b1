package providers

import (
	"context"
	"fmt"

	"shopfront/internal/config"
)

// Message represents a chat message sent to a completion provider. A message
// may carry an inline image reference (data URI) alongside its text; not
// every provider supports that.
type Message struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// Options bound a single completion call.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Provider interface for LLM completion providers
type Provider interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// New builds the provider selected by configuration.
func New(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIProvider(cfg)
	case "azure":
		return NewAzureOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
