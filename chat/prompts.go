package chat

import "errors"

// SystemPrompt frames every conversational exchange. Conversation history is
// supplied separately as typed messages.
const SystemPrompt = "You are a helpful AI assistant. Answer the user's " +
	"questions clearly and concisely, using the conversation so far for context."

// SummarizeInstruction prefixes transcriptions of uploaded audio files, which
// are summarized rather than answered directly.
const SummarizeInstruction = "Summarize this text: "

// DefaultImageQuestion is used when an image arrives without a typed question.
const DefaultImageQuestion = "Describe this image"

var (
	ErrNoResponder   = errors.New("no conversational responder configured")
	ErrNoTranscriber = errors.New("no transcription service configured")
	ErrNoDescriber   = errors.New("no image description service configured")
	ErrNoIngestor    = errors.New("no document ingestion service configured")
)
