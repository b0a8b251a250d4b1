package providers

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"shopfront/internal/config"
)

// OpenAIProvider implements the Provider interface over the OpenAI chat
// completions API. It is the only provider with vision support.
type OpenAIProvider struct {
	client *openai.LLM
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg config.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI configuration missing: ensure OPENAI_API_KEY is set")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIProvider{client: client}, nil
}

// Complete implements the Provider interface
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	content := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case "system":
			msgType = llms.ChatMessageTypeSystem
		case "assistant":
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}

		if msg.ImageURL != "" {
			content[i] = llms.MessageContent{
				Role: msgType,
				Parts: []llms.ContentPart{
					llms.TextPart(msg.Content),
					llms.ImageURLPart(msg.ImageURL),
				},
			}
		} else {
			content[i] = llms.TextParts(msgType, msg.Content)
		}
	}

	response, err := p.client.GenerateContent(ctx, content,
		llms.WithTemperature(opts.Temperature),
		llms.WithMaxTokens(opts.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI completion failed: %w", err)
	}

	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return response.Choices[0].Content, nil
}
