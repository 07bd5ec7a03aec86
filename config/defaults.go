package config

func defaultConfig() *Config {
	return &Config{
		DataDirectory:  GetDefaultDataDir(),
		Provider:       "ollama",
		OllamaHost:     "http://localhost:11434",
		ChatModel:      "llama3.1:latest",
		VisionModel:    "llava:latest",
		EmbeddingModel: "nomic-embed-text:latest",
		WhisperBaseURL: "http://localhost:8000/v1",
		WhisperModel:   "whisper-1",
		Temperature:    0.7,
		ContextWindow:  4096,
	}
}

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: GetDefaultDataDir(),
	}
}

func DefaultUserConfig() *UserConfig {
	d := defaultConfig()
	return &UserConfig{
		Provider: d.Provider,
		Ollama: OllamaConfig{
			Host:           d.OllamaHost,
			ChatModel:      d.ChatModel,
			VisionModel:    d.VisionModel,
			EmbeddingModel: d.EmbeddingModel,
		},
		Whisper: WhisperConfig{
			BaseURL: d.WhisperBaseURL,
			Model:   d.WhisperModel,
		},
		Model: ModelParams{
			Temperature:   d.Temperature,
			ContextWindow: d.ContextWindow,
		},
	}
}

// GenerateSystemConfigTemplate is the settings.toml written on first run.
func GenerateSystemConfigTemplate() string {
	return `# multichat system settings
# Only the data directory lives here; everything else is in
# <data_directory>/config.toml

data_directory = "~/.local/share/multichat"
`
}

// GenerateUserConfigTemplate is the config.toml written on first run.
func GenerateUserConfigTemplate() string {
	return `# multichat configuration

# Conversational responder: "ollama" (local), "openai", or "anthropic".
# Cloud providers read OPENAI_API_KEY / ANTHROPIC_API_KEY from the
# environment.
provider = "ollama"

[ollama]
host = "http://localhost:11434"
chat_model = "llama3.1:latest"
vision_model = "llava:latest"
embedding_model = "nomic-embed-text:latest"

[whisper]
# Any OpenAI-compatible transcription endpoint works here; point it at a
# local Whisper server to stay offline.
base_url = "http://localhost:8000/v1"
model = "whisper-1"

[model]
temperature = 0.7
context_window = 4096
# Override the built-in system prompt. Ollama provider only.
# system_prompt = ""
`
}
