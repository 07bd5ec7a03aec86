package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"multichat/chat"
	"multichat/storage"
)

// AnthropicResponder answers user text through the Anthropic Messages API.
type AnthropicResponder struct {
	client *anthropic.Client
	model  anthropic.Model
	system string
}

func NewAnthropicResponder(baseURL, apiKey, model string) (*AnthropicResponder, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	var anthropicModel anthropic.Model
	if model == "" {
		anthropicModel = anthropic.ModelClaudeSonnet4_5_20250929
	} else {
		anthropicModel = anthropic.Model(model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicResponder{
		client: &client,
		model:  anthropicModel,
		system: chat.SystemPrompt,
	}, nil
}

// Respond implements chat.Responder.
func (r *AnthropicResponder) Respond(ctx context.Context, userText string, history []storage.Message) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, msg := range history {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Type == storage.RoleAI {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(userText)))

	params := anthropic.MessageNewParams{
		Model:     r.model,
		Messages:  messages,
		MaxTokens: 4096, // required by the API
	}
	if r.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: r.system}}
	}

	resp, err := r.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Anthropic chat error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(variant.Text)
		}
	}

	return sb.String(), nil
}
