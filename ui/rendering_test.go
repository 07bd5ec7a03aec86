package ui

import (
	"strings"
	"testing"

	"multichat/storage"
)

func TestTruncateLine(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateLine(tt.in, tt.width); got != tt.want {
				t.Errorf("truncateLine(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestRenderTranscriptEmpty(t *testing.T) {
	out := renderTranscript(nil, 80)
	if !strings.Contains(out, "No messages yet") {
		t.Errorf("empty transcript rendering = %q", out)
	}
}

func TestRenderTranscriptRoles(t *testing.T) {
	messages := []storage.Message{
		storage.HumanMessage("a question"),
		storage.AIMessage("an answer"),
	}

	out := renderTranscript(messages, 80)
	if !strings.Contains(out, "You") || !strings.Contains(out, "Assistant") {
		t.Errorf("transcript missing role labels: %q", out)
	}
	if !strings.Contains(out, "a question") || !strings.Contains(out, "an answer") {
		t.Errorf("transcript missing message content: %q", out)
	}
}
