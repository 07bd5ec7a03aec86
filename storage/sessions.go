package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Message roles as they appear on disk. "human" is the user, "ai" the
// assistant; anything else in a session file is a format error.
const (
	RoleHuman = "human"
	RoleAI    = "ai"
)

var (
	// ErrNotFound is returned when a session file does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrBadFormat is returned when a session file is not valid JSON or
	// contains a message with a missing or unrecognized role.
	ErrBadFormat = errors.New("malformed session file")
)

// Message is one utterance in a conversation. Content may be a summary of
// non-text input (a transcription, an image description).
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// HumanMessage creates a user message.
func HumanMessage(content string) Message {
	return Message{Type: RoleHuman, Content: content}
}

// AIMessage creates an assistant message.
func AIMessage(content string) Message {
	return Message{Type: RoleAI, Content: content}
}

// TimestampLayout names auto-created sessions: "DD-MM-YYYY, HH:MM:SS".
const TimestampLayout = "02-01-2006, 15:04:05"

// Timestamp returns the current time formatted for use as a session name.
func Timestamp() string {
	return time.Now().Format(TimestampLayout)
}

// HistoryStore persists transcripts, one JSON file per session. A session
// file holds a single JSON array of {type, content} records in conversation
// order. Writes are full overwrites; there is no merge and no partial-write
// protection.
type HistoryStore struct {
	historyDir string
}

// NewHistoryStore creates the history directory if needed (0700 - transcripts
// are private to the user).
func NewHistoryStore(historyDir string) (*HistoryStore, error) {
	if err := os.MkdirAll(historyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &HistoryStore{historyDir: historyDir}, nil
}

// Dir returns the history directory path.
func (s *HistoryStore) Dir() string {
	return s.historyDir
}

func (s *HistoryStore) filePath(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(s.historyDir, name)
}

// Save serializes the full ordered transcript to the named session file,
// overwriting any existing content.
func (s *HistoryStore) Save(messages []Message, name string) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	// 0600 - session files contain conversation history
	if err := os.WriteFile(s.filePath(name), data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session file written by Save and reconstructs the ordered
// transcript, reviving each record into a role-typed message. A missing file
// yields ErrNotFound; invalid JSON or an unrecognized role yields
// ErrBadFormat and the whole load aborts.
func (s *HistoryStore) Load(name string) ([]Message, error) {
	data, err := os.ReadFile(s.filePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadFormat, name, err)
	}

	for i, msg := range messages {
		switch msg.Type {
		case RoleHuman, RoleAI:
		default:
			return nil, fmt.Errorf("%w: %s: message %d has unknown role %q",
				ErrBadFormat, name, i, msg.Type)
		}
	}

	return messages, nil
}

// Exists reports whether a session file is present.
func (s *HistoryStore) Exists(name string) bool {
	_, err := os.Stat(s.filePath(name))
	return err == nil
}

// List returns the names of all stored sessions, sorted. Names keep their
// .json suffix since that is how existing files are addressed.
func (s *HistoryStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.historyDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}
