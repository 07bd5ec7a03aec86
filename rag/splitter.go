package rag

import "strings"

// Chunking defaults match what the indexed documents were tuned for:
// generous chunks with a small overlap to keep sentence context across
// boundaries.
const (
	DefaultChunkSize    = 2000
	DefaultChunkOverlap = 50
)

// Splitter cuts text into overlapping chunks, preferring to break on the
// configured separators (most to least desirable) before falling back to a
// hard cut.
type Splitter struct {
	ChunkSize  int
	Overlap    int
	Separators []string
}

func NewSplitter() *Splitter {
	return &Splitter{
		ChunkSize:  DefaultChunkSize,
		Overlap:    DefaultChunkOverlap,
		Separators: []string{"\n\n", "\n", " "},
	}
}

// Split returns the chunks of text in order. Chunks are at most ChunkSize
// runes; consecutive chunks share Overlap runes of context.
func (sp *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= sp.ChunkSize {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + sp.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = sp.breakPoint(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}

		next := end - sp.Overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// breakPoint finds the latest separator inside (start, limit] so chunks end
// on natural boundaries where possible.
func (sp *Splitter) breakPoint(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	for _, sep := range sp.Separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + len([]rune(window[:idx+len(sep)]))
		}
	}
	return limit
}
