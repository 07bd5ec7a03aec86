package storage

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SessionMatch is one message hit from a cross-session search.
type SessionMatch struct {
	Session      string
	MessageIndex int
	Role         string
	Preview      string
}

// SearchSessions scans every stored transcript for messages containing the
// query (case-insensitive). Sessions that fail to load are skipped rather
// than aborting the search.
func (s *HistoryStore) SearchSessions(query string) ([]SessionMatch, error) {
	if query == "" {
		return []SessionMatch{}, nil
	}

	names, err := s.List()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var matches []SessionMatch

	for _, name := range names {
		messages, err := s.Load(name)
		if err != nil {
			continue
		}

		for i, msg := range messages {
			if !strings.Contains(strings.ToLower(msg.Content), queryLower) {
				continue
			}

			preview := msg.Content
			if runes := []rune(preview); len(runes) > 100 {
				preview = string(runes[:100]) + "..."
			}

			matches = append(matches, SessionMatch{
				Session:      name,
				MessageIndex: i,
				Role:         msg.Type,
				Preview:      preview,
			})
		}
	}

	return matches, nil
}

// FilterNames fuzzy-filters session names for the selector list. An empty
// filter returns the input unchanged.
func FilterNames(names []string, filter string) []string {
	if filter == "" {
		return names
	}

	results := fuzzy.Find(filter, names)
	filtered := make([]string, 0, len(results))
	for _, r := range results {
		filtered = append(filtered, names[r.Index])
	}
	return filtered
}
