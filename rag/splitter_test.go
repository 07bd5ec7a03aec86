package rag

import (
	"strings"
	"testing"
)

func TestSplitShortText(t *testing.T) {
	sp := NewSplitter()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t ", nil},
		{"fits in one chunk", "a short paragraph", []string{"a short paragraph"}},
		{"trims surrounding space", "  padded  ", []string{"padded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sp.Split(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Split returned %d chunks, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	sp := &Splitter{ChunkSize: 20, Overlap: 5, Separators: []string{"\n\n", "\n", " "}}
	text := strings.Repeat("word ", 50)

	chunks := sp.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > sp.ChunkSize {
			t.Errorf("chunk %d is %d runes, exceeds limit %d", i, n, sp.ChunkSize)
		}
	}
}

func TestSplitBreaksOnParagraphs(t *testing.T) {
	sp := &Splitter{ChunkSize: 30, Overlap: 0, Separators: []string{"\n\n", "\n", " "}}
	text := "first paragraph here.\n\nsecond paragraph follows it."

	chunks := sp.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "first paragraph here." {
		t.Errorf("first chunk = %q", chunks[0])
	}
	if chunks[1] != "second paragraph follows it." {
		t.Errorf("second chunk = %q", chunks[1])
	}
}

func TestSplitChunksComeFromInput(t *testing.T) {
	sp := &Splitter{ChunkSize: 10, Overlap: 4, Separators: []string{" "}}
	text := "aaaa bbbb cccc dddd"

	chunks := sp.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %q", chunks)
	}
	for i, chunk := range chunks {
		if !strings.Contains(text, chunk) {
			t.Errorf("chunk %d %q not a substring of the input", i, chunk)
		}
	}
}

func TestSplitCoversAllContent(t *testing.T) {
	sp := &Splitter{ChunkSize: 15, Overlap: 3, Separators: []string{" "}}
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}
	text := strings.Join(words, " ")

	joined := strings.Join(sp.Split(text), " ")
	for _, w := range words {
		if !strings.Contains(joined, w) {
			t.Errorf("word %q lost during splitting", w)
		}
	}
}
