package chat

import "multichat/storage"

// DefaultMemoryWindow is the number of recent exchanges fed back to the
// responder as conversation context.
const DefaultMemoryWindow = 3

// WindowMemory exposes a sliding window over the transcript: the last k
// (human, ai) exchanges. The full transcript stays on disk and on screen;
// only the window rides along in the prompt.
type WindowMemory struct {
	k int
}

func NewWindowMemory(k int) *WindowMemory {
	if k < 1 {
		k = DefaultMemoryWindow
	}
	return &WindowMemory{k: k}
}

// History returns the most recent messages, at most k exchanges (2k
// messages). The returned slice aliases the transcript; callers must not
// mutate it.
func (m *WindowMemory) History(transcript []storage.Message) []storage.Message {
	limit := m.k * 2
	if len(transcript) <= limit {
		return transcript
	}
	return transcript[len(transcript)-limit:]
}
