package provider

import (
	"testing"

	"multichat/chat"
	"multichat/ollama"
	"multichat/storage"
)

func TestNewOllamaResponderWithClient(t *testing.T) {
	client, err := ollama.NewClient("http://localhost:11434", "llama3.1:latest")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	r := NewOllamaResponderWithClient(client)
	if r.Client() != client {
		t.Error("responder does not share the given client")
	}
	if r.system != chat.SystemPrompt {
		t.Errorf("system prompt = %q, want the default", r.system)
	}

	r.SetSystemPrompt("Answer in French.")
	if r.system != "Answer in French." {
		t.Errorf("system prompt = %q after override", r.system)
	}
}

func TestToOllamaMessages(t *testing.T) {
	history := []storage.Message{
		storage.HumanMessage("hi"),
		storage.AIMessage("hello"),
	}

	got := toOllamaMessages(history)
	if len(got) != 2 {
		t.Fatalf("converted %d messages, want 2", len(got))
	}
	if got[0].Role != "user" || got[0].Content != "hi" {
		t.Errorf("first message = %+v", got[0])
	}
	if got[1].Role != "assistant" || got[1].Content != "hello" {
		t.Errorf("second message = %+v", got[1])
	}
}
