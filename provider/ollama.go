package provider

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"

	"multichat/chat"
	"multichat/ollama"
	"multichat/storage"
)

// OllamaResponder answers user text with a local Ollama model, carrying the
// memory window as typed chat messages.
type OllamaResponder struct {
	client *ollama.Client
	system string
}

func NewOllamaResponder(baseURL, model string) (*OllamaResponder, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaResponder{
		client: client,
		system: chat.SystemPrompt,
	}, nil
}

// NewOllamaResponderWithClient reuses an existing client, e.g. to share one
// connection between the responder and the UI's model list.
func NewOllamaResponderWithClient(client *ollama.Client) *OllamaResponder {
	return &OllamaResponder{client: client, system: chat.SystemPrompt}
}

// SetSystemPrompt overrides the default system prompt.
func (r *OllamaResponder) SetSystemPrompt(system string) {
	r.system = system
}

// Respond implements chat.Responder.
func (r *OllamaResponder) Respond(ctx context.Context, userText string, history []storage.Message) (string, error) {
	messages := make([]api.Message, 0, len(history)+2)
	if r.system != "" {
		messages = append(messages, api.Message{Role: "system", Content: r.system})
	}
	messages = append(messages, toOllamaMessages(history)...)
	messages = append(messages, api.Message{Role: "user", Content: userText})

	return r.client.Generate(ctx, messages)
}

// Client exposes the underlying Ollama client.
func (r *OllamaResponder) Client() *ollama.Client {
	return r.client
}

// OllamaDescriber answers questions about images with a multimodal Ollama
// model (llava and friends).
type OllamaDescriber struct {
	client *ollama.Client
}

func NewOllamaDescriber(baseURL, visionModel string) (*OllamaDescriber, error) {
	client, err := ollama.NewClient(baseURL, visionModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaDescriber{client: client}, nil
}

// Describe implements chat.Describer.
func (d *OllamaDescriber) Describe(ctx context.Context, image []byte, question string) (string, error) {
	return d.client.Describe(ctx, image, question)
}

// toOllamaMessages converts stored transcript messages to Ollama API
// messages. Stored roles are "human"/"ai"; the API wants "user"/"assistant".
func toOllamaMessages(messages []storage.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		role := "user"
		if msg.Type == storage.RoleAI {
			role = "assistant"
		}
		result[i] = api.Message{Role: role, Content: msg.Content}
	}
	return result
}
