package provider

import (
	"bytes"
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"multichat/chat"
	"multichat/storage"
)

// OpenAIResponder answers user text through an OpenAI-compatible chat
// completions endpoint.
type OpenAIResponder struct {
	client openai.Client
	model  string
	system string
}

func NewOpenAIResponder(baseURL, apiKey, model string) (*OpenAIResponder, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIResponder{
		client: client,
		model:  model,
		system: chat.SystemPrompt,
	}, nil
}

// Respond implements chat.Responder.
func (r *OpenAIResponder) Respond(ctx context.Context, userText string, history []storage.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if r.system != "" {
		messages = append(messages, openai.SystemMessage(r.system))
	}
	for _, msg := range history {
		if msg.Type == storage.RoleAI {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(userText))

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(r.model),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI chat error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI chat returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// WhisperTranscriber converts audio to text through an OpenAI-compatible
// transcription endpoint. Local Whisper servers (llama.cpp, LocalAI, faster-
// whisper-server) expose the same API, so the base URL usually points at
// localhost.
type WhisperTranscriber struct {
	client openai.Client
	model  string
}

func NewWhisperTranscriber(baseURL, apiKey, model string) (*WhisperTranscriber, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "whisper-1"
	}

	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	return &WhisperTranscriber{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Transcribe implements chat.Transcriber.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), "audio.wav", "audio/wav"),
		Model: openai.AudioModel(t.model),
	})
	if err != nil {
		return "", fmt.Errorf("transcription error: %w", err)
	}

	return resp.Text, nil
}

var _ chat.Transcriber = (*WhisperTranscriber)(nil)
