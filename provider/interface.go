// Package provider implements the external responder collaborators behind
// narrow contracts: conversational responders (Ollama, OpenAI, Anthropic),
// audio transcription, and image description. The chat package consumes them
// through its interfaces and stays provider-agnostic.
package provider

// Type identifies the responder implementation.
type Type string

const (
	TypeOllama    Type = "ollama"
	TypeOpenAI    Type = "openai"
	TypeAnthropic Type = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    Type
	BaseURL string
	Model   string
	APIKey  string // for OpenAI/Anthropic (unused for Ollama)
}
