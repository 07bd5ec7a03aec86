package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"multichat/chat"
	"multichat/config"
	"multichat/ollama"
	"multichat/provider"
	"multichat/rag"
	"multichat/storage"
	"multichat/ui"
)

const (
	Version = "v0.1.0"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())
	config.Debugf("[main] starting provider=%s model=%s data=%s",
		cfg.Provider, cfg.ChatModel, cfg.DataDir())

	store, err := storage.NewHistoryStore(cfg.HistoryDir())
	if err != nil {
		fmt.Printf("Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}
	selector := storage.NewSelector(store)

	responder, modelsClient, err := buildResponder(cfg)
	if err != nil {
		fmt.Printf("Failed to create %s responder: %v\n", cfg.Provider, err)
		os.Exit(1)
	}

	describer, err := provider.NewOllamaDescriber(cfg.OllamaHost, cfg.VisionModel)
	if err != nil {
		fmt.Printf("Failed to create image describer: %v\n", err)
		os.Exit(1)
	}

	transcriber, err := provider.NewWhisperTranscriber(cfg.WhisperBaseURL, cfg.OpenAIKey, cfg.WhisperModel)
	if err != nil {
		fmt.Printf("Failed to create transcriber: %v\n", err)
		os.Exit(1)
	}

	embedder, err := ollama.NewClient(cfg.OllamaHost, cfg.EmbeddingModel)
	if err != nil {
		fmt.Printf("Failed to create embedding client: %v\n", err)
		os.Exit(1)
	}

	if err := embedder.Ping(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Ollama is not reachable at %s: %v\n", cfg.OllamaHost, err)
		config.Debugf("[main] ollama ping failed: %v", err)
	}

	vectorStore, err := rag.OpenVectorStore(cfg.IndexPath())
	if err != nil {
		fmt.Printf("Failed to open document index: %v\n", err)
		os.Exit(1)
	}
	defer vectorStore.Close()

	coordinator := chat.NewCoordinator(chat.Deps{
		Responder:   responder,
		Grounded:    rag.NewGroundedResponder(rag.NewRetriever(embedder, vectorStore), responder),
		Transcriber: transcriber,
		Describer:   describer,
		Ingestor:    rag.NewIngestor(embedder, vectorStore),
	}, nil)

	app := ui.NewAppView(cfg, coordinator, selector)
	if modelsClient != nil {
		app.SetModelClient(modelsClient)
	}
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildResponder creates the conversational responder from configuration.
// The local Ollama path shares one client between the responder and the UI's
// model picker; model runtime parameters and the system prompt override only
// apply there, cloud providers use their own defaults.
func buildResponder(cfg *config.Config) (chat.Responder, *ollama.Client, error) {
	switch provider.Type(cfg.Provider) {
	case provider.TypeOllama:
		client, err := ollama.NewClient(cfg.OllamaHost, cfg.ChatModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		client.SetOptions(cfg.ModelOptions())

		responder := provider.NewOllamaResponderWithClient(client)
		if cfg.SystemPrompt != "" {
			responder.SetSystemPrompt(cfg.SystemPrompt)
		}
		return responder, client, nil

	case provider.TypeOpenAI:
		responder, err := provider.NewResponder(provider.Config{
			Type:   provider.TypeOpenAI,
			Model:  cfg.ChatModel,
			APIKey: cfg.OpenAIKey,
		})
		return responder, nil, err

	case provider.TypeAnthropic:
		responder, err := provider.NewResponder(provider.Config{
			Type:   provider.TypeAnthropic,
			Model:  cfg.ChatModel,
			APIKey: cfg.AnthropicKey,
		})
		return responder, nil, err

	default:
		return nil, nil, fmt.Errorf("unknown provider type: %s", cfg.Provider)
	}
}
