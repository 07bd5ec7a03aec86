package storage

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSearchSessions(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save([]Message{
		HumanMessage("Tell me about whales"),
		AIMessage("Whales are marine mammals."),
	}, "animals.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save([]Message{
		HumanMessage("What is Go?"),
		AIMessage("A programming language."),
	}, "golang.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	matches, err := store.SearchSessions("whales")
	if err != nil {
		t.Fatalf("SearchSessions failed: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Session != "animals.json" {
			t.Errorf("match in wrong session: %+v", m)
		}
	}

	empty, err := store.SearchSessions("")
	if err != nil {
		t.Fatalf("SearchSessions failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty query returned matches: %+v", empty)
	}
}

func TestSearchPreviewKeepsValidUTF8(t *testing.T) {
	store := newTestStore(t)

	long := "日本語のテキスト " + strings.Repeat("って", 60)
	if err := store.Save([]Message{HumanMessage(long)}, "long.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	matches, err := store.SearchSessions("テキスト")
	if err != nil {
		t.Fatalf("SearchSessions failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	preview := matches[0].Preview
	if !utf8.ValidString(preview) {
		t.Errorf("preview is not valid UTF-8: %q", preview)
	}
	if got := len([]rune(preview)); got != 103 { // 100 runes + "..."
		t.Errorf("preview length = %d runes, want 103", got)
	}
}

func TestFilterNames(t *testing.T) {
	names := []string{"new_session", "01-02-2025, 10:00:00.json", "15-03-2025, 09:30:00.json"}

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"empty filter returns all", "", names},
		{"no match", "zzz", []string{}},
		{"fuzzy match", "new", []string{"new_session"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterNames(names, tt.filter)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterNames = %v, want %v", got, tt.want)
			}
		})
	}
}
