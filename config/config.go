package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// SystemConfig lives in ~/.config/multichat/settings.toml and only locates
// the data directory; everything else is user config inside that directory.
type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

// OllamaConfig covers every local model role the app uses.
type OllamaConfig struct {
	Host           string `toml:"host"`
	ChatModel      string `toml:"chat_model"`
	VisionModel    string `toml:"vision_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

// WhisperConfig points at an OpenAI-compatible transcription endpoint.
type WhisperConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// ModelParams are runtime parameters forwarded to the chat model.
type ModelParams struct {
	Temperature   float64 `toml:"temperature"`
	ContextWindow int     `toml:"context_window"`
	SystemPrompt  string  `toml:"system_prompt"`
}

// UserConfig lives in <data>/config.toml.
type UserConfig struct {
	Provider string        `toml:"provider"`
	Ollama   OllamaConfig  `toml:"ollama"`
	Whisper  WhisperConfig `toml:"whisper"`
	Model    ModelParams   `toml:"model"`
}

// Config is the resolved configuration handed to every component at startup.
// It is constructed once in main and passed by reference; nothing reads
// ambient settings after this.
type Config struct {
	DataDirectory string

	Provider       string
	OllamaHost     string
	ChatModel      string
	VisionModel    string
	EmbeddingModel string

	WhisperBaseURL string
	WhisperModel   string

	Temperature   float64
	ContextWindow int
	SystemPrompt  string

	// Cloud provider keys come from the environment only; they are never
	// written to disk.
	OpenAIKey    string
	AnthropicKey string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// HistoryDir is where session transcripts live.
func (c *Config) HistoryDir() string {
	return filepath.Join(c.DataDir(), "chat_history")
}

// IndexPath is the SQLite database backing the document retrieval index.
func (c *Config) IndexPath() string {
	return filepath.Join(c.DataDir(), "index", "documents.db")
}

// ModelOptions returns the runtime parameters in the shape the Ollama API
// expects.
func (c *Config) ModelOptions() map[string]any {
	opts := map[string]any{}
	if c.Temperature > 0 {
		opts["temperature"] = c.Temperature
	}
	if c.ContextWindow > 0 {
		opts["num_ctx"] = c.ContextWindow
	}
	return opts
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("MULTICHAT_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if model := os.Getenv("MULTICHAT_MODEL"); model != "" {
		c.ChatModel = model
	}
	if dataDir := os.Getenv("MULTICHAT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if provider := os.Getenv("MULTICHAT_PROVIDER"); provider != "" {
		c.Provider = provider
	}
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
}

func CheckDebug() bool {
	debug := os.Getenv("MULTICHAT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - may contain prompt contents
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (MULTICHAT_DEBUG=%s) ===", os.Getenv("MULTICHAT_DEBUG"))
}

// Debugf writes to the debug log. No-op unless InitDebugLog ran with
// MULTICHAT_DEBUG enabled.
func Debugf(format string, v ...any) {
	if DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// Load resolves the full configuration: defaults, then settings.toml and the
// user config, then environment overrides. First run creates both config
// files and the data directory.
func Load() (*Config, error) {
	cfg := defaultConfig()

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	userCfg, err := LoadUserConfig(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.apply(userCfg)

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) apply(userCfg *UserConfig) {
	if userCfg.Provider != "" {
		c.Provider = userCfg.Provider
	}
	if userCfg.Ollama.Host != "" {
		c.OllamaHost = userCfg.Ollama.Host
	}
	if userCfg.Ollama.ChatModel != "" {
		c.ChatModel = userCfg.Ollama.ChatModel
	}
	if userCfg.Ollama.VisionModel != "" {
		c.VisionModel = userCfg.Ollama.VisionModel
	}
	if userCfg.Ollama.EmbeddingModel != "" {
		c.EmbeddingModel = userCfg.Ollama.EmbeddingModel
	}
	if userCfg.Whisper.BaseURL != "" {
		c.WhisperBaseURL = userCfg.Whisper.BaseURL
	}
	if userCfg.Whisper.Model != "" {
		c.WhisperModel = userCfg.Whisper.Model
	}
	if userCfg.Model.Temperature > 0 {
		c.Temperature = userCfg.Model.Temperature
	}
	if userCfg.Model.ContextWindow > 0 {
		c.ContextWindow = userCfg.Model.ContextWindow
	}
	if userCfg.Model.SystemPrompt != "" {
		c.SystemPrompt = userCfg.Model.SystemPrompt
	}
}
