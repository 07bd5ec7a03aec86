package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// Client wraps the Ollama API client with the calls this application needs:
// chat with streamed responses, multimodal describe, and embeddings.
type Client struct {
	client  *api.Client
	model   string
	baseURL string
	options map[string]any
}

// StreamCallback is invoked for each chunk of a streamed response.
type StreamCallback func(chunk string) error

func NewClient(baseURL, model string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := api.NewClient(parsedURL, http.DefaultClient)

	return &Client{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// SetOptions sets model runtime parameters (temperature, num_ctx, ...) passed
// through on every request.
func (c *Client) SetOptions(options map[string]any) {
	c.options = options
}

// Chat sends messages and streams the response back via callback.
func (c *Client) Chat(ctx context.Context, messages []api.Message, callback StreamCallback) error {
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Options:  c.options,
		Stream:   func(b bool) *bool { return &b }(true),
	}

	respFunc := func(resp api.ChatResponse) error {
		if callback != nil {
			return callback(resp.Message.Content)
		}
		return nil
	}

	return c.client.Chat(ctx, req, respFunc)
}

// Generate runs a chat request to completion and returns the accumulated
// response text. The coordinator's external calls are synchronous, so this is
// the call sites' usual entry point; streaming display goes through Chat.
func (c *Client) Generate(ctx context.Context, messages []api.Message) (string, error) {
	var sb strings.Builder
	if err := c.Chat(ctx, messages, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Describe sends an image with a question to a multimodal model and returns
// the answer.
func (c *Client) Describe(ctx context.Context, image []byte, question string) (string, error) {
	messages := []api.Message{
		{
			Role:    "user",
			Content: question,
			Images:  []api.ImageData{image},
		},
	}
	return c.Generate(ctx, messages)
}

// Embed returns one embedding vector per input string.
func (c *Client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	req := &api.EmbedRequest{
		Model: c.model,
		Input: inputs,
	}

	resp, err := c.client.Embed(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to embed: %w", err)
	}

	return resp.Embeddings, nil
}

type ModelInfo struct {
	Name string
	Size int64
}

func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]ModelInfo, len(resp.Models))
	for i, model := range resp.Models {
		models[i] = ModelInfo{
			Name: model.Name,
			Size: model.Size,
		}
	}

	return models, nil
}

func (c *Client) SetModel(model string) {
	c.model = model
}

func (c *Client) GetModel() string {
	return c.model
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.client.List(ctx)
	return err
}
