package providers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"shopfront/internal/config"
)

// AzureOpenAIProvider implements the Provider interface for Azure OpenAI.
// It handles text conversations only; menu extraction needs a provider with
// vision support.
type AzureOpenAIProvider struct {
	client         *azopenai.Client
	deploymentName string
}

// NewAzureOpenAIProvider creates a new Azure OpenAI provider
func NewAzureOpenAIProvider(cfg config.LLMConfig) (*AzureOpenAIProvider, error) {
	if cfg.AzureEndpoint == "" || cfg.APIKey == "" || cfg.AzureDeployment == "" {
		return nil, fmt.Errorf("Azure OpenAI configuration missing: ensure AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY, and AZURE_OPENAI_DEPLOYMENT_NAME are set")
	}

	keyCredential := azcore.NewKeyCredential(cfg.APIKey)
	client, err := azopenai.NewClientWithKeyCredential(cfg.AzureEndpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}

	return &AzureOpenAIProvider{
		client:         client,
		deploymentName: cfg.AzureDeployment,
	}, nil
}

// Complete implements the Provider interface
func (p *AzureOpenAIProvider) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	chatMessages := make([]azopenai.ChatRequestMessageClassification, len(messages))

	for i, msg := range messages {
		if msg.ImageURL != "" {
			return "", fmt.Errorf("image content is not supported by the Azure OpenAI provider")
		}
		switch msg.Role {
		case "system":
			chatMessages[i] = &azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(msg.Content),
			}
		case "user":
			chatMessages[i] = &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(msg.Content),
			}
		case "assistant":
			chatMessages[i] = &azopenai.ChatRequestAssistantMessage{
				Content: azopenai.NewChatRequestAssistantMessageContent(msg.Content),
			}
		default:
			return "", fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	resp, err := p.client.GetChatCompletions(ctx, azopenai.ChatCompletionsOptions{
		Messages:       chatMessages,
		MaxTokens:      to.Ptr(int32(opts.MaxTokens)),
		Temperature:    to.Ptr(float32(opts.Temperature)),
		DeploymentName: to.Ptr(p.deploymentName),
	}, nil)

	if err != nil {
		return "", fmt.Errorf("Azure OpenAI completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	if resp.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("empty response from Azure OpenAI")
	}

	return *resp.Choices[0].Message.Content, nil
}
