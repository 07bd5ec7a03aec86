package provider

import (
	"fmt"

	"multichat/chat"
)

// NewResponder creates a conversational responder from configuration. This is
// the single dispatch point for provider selection; callers hold the result
// as a chat.Responder and never see provider-specific types.
func NewResponder(cfg Config) (chat.Responder, error) {
	switch cfg.Type {
	case TypeOllama:
		return NewOllamaResponder(cfg.BaseURL, cfg.Model)
	case TypeOpenAI:
		return NewOpenAIResponder(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeAnthropic:
		return NewAnthropicResponder(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
