package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"multichat/chat"
	"multichat/ollama"
	"multichat/storage"
)

func newTestApp(t *testing.T) *AppView {
	t.Helper()
	store, err := storage.NewHistoryStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	a := NewAppView(nil, chat.NewCoordinator(chat.Deps{}, nil), storage.NewSelector(store))
	a.ready = true
	a.width = 80
	a.height = 24
	return a
}

func TestCycleDoneMsgAppliesStateOnEventLoop(t *testing.T) {
	a := newTestApp(t)
	a.busy = true

	msgs := []storage.Message{
		storage.HumanMessage("q"),
		storage.AIMessage("a"),
	}
	a.Update(cycleDoneMsg{Appended: msgs, Transcript: msgs, Session: "s.json"})

	if a.busy {
		t.Error("busy not cleared after cycle")
	}
	if a.sessionName != "s.json" {
		t.Errorf("sessionName = %q, want s.json", a.sessionName)
	}
	if len(a.transcript) != 2 {
		t.Errorf("transcript mirror holds %d messages, want 2", len(a.transcript))
	}
}

func TestBusyBlocksSharedStateKeys(t *testing.T) {
	a := newTestApp(t)
	a.busy = true

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if a.coordinator.DocumentGrounded() {
		t.Error("mode toggled while a cycle was running")
	}

	a.textarea.SetValue("hello")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter started a second cycle while busy")
	}
}

func TestSearchFlowFindsAndOpensSession(t *testing.T) {
	a := newTestApp(t)
	if err := a.selector.Store().Save([]storage.Message{
		storage.HumanMessage("where is the needle"),
	}, "haystack.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	a.showSearch = true
	a.searchInput.SetValue("needle")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("search submit produced no command")
	}
	results, ok := cmd().(searchResultsMsg)
	if !ok {
		t.Fatal("search command did not return results")
	}
	a.Update(results)

	if !a.searched || len(a.searchResults) != 1 {
		t.Fatalf("search state = searched=%v results=%d", a.searched, len(a.searchResults))
	}
	if a.searchResults[0].Session != "haystack.json" {
		t.Errorf("match session = %q", a.searchResults[0].Session)
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("result selection produced no command")
	}
	switched, ok := cmd().(sessionSwitchedMsg)
	if !ok || switched.Err != nil {
		t.Fatalf("session switch failed: %+v", switched)
	}
	a.Update(switched)

	if a.sessionName != "haystack.json" {
		t.Errorf("sessionName = %q, want haystack.json", a.sessionName)
	}
	if a.showSearch {
		t.Error("search modal still open after switching")
	}
}

func TestModelPickerSwitchesModel(t *testing.T) {
	a := newTestApp(t)
	client, err := ollama.NewClient("", "llama3.1:latest")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	a.SetModelClient(client)

	a.Update(modelsLoadedMsg{Names: []string{"llama3.1:latest", "mistral:latest"}})
	if !a.showModels || len(a.modelChoices) != 2 {
		t.Fatalf("picker state = show=%v choices=%d", a.showModels, len(a.modelChoices))
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := client.GetModel(); got != "mistral:latest" {
		t.Errorf("model = %q, want mistral:latest", got)
	}
	if a.showModels {
		t.Error("picker still open after selection")
	}
}
