package storage

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSelectorStartsUnbound(t *testing.T) {
	sel := NewSelector(newTestStore(t))

	if sel.Current() != NewSession {
		t.Errorf("initial selection = %q, want %q", sel.Current(), NewSession)
	}
	if !sel.IsNew() {
		t.Error("expected IsNew on a fresh selector")
	}
}

func TestSelectorChoices(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save([]Message{HumanMessage("x")}, "old.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sel := NewSelector(store)
	choices, err := sel.Choices()
	if err != nil {
		t.Fatalf("Choices failed: %v", err)
	}

	if len(choices) != 2 || choices[0] != NewSession || choices[1] != "old.json" {
		t.Errorf("Choices = %v", choices)
	}
}

func TestSelectNewSessionYieldsEmptyTranscript(t *testing.T) {
	sel := NewSelector(newTestStore(t))

	messages, err := sel.Select(NewSession)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected empty transcript, got %+v", messages)
	}
}

func TestSelectLoadsStoredSession(t *testing.T) {
	store := newTestStore(t)
	saved := []Message{HumanMessage("hi"), AIMessage("hello")}
	if err := store.Save(saved, "s.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sel := NewSelector(store)
	messages, err := sel.Select("s.json")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if len(messages) != 2 || messages[1].Content != "hello" {
		t.Errorf("loaded transcript = %+v", messages)
	}
	if sel.Current() != "s.json" {
		t.Errorf("selection = %q, want s.json", sel.Current())
	}
}

func TestSelectFailedLoadKeepsSelection(t *testing.T) {
	sel := NewSelector(newTestStore(t))

	_, err := sel.Select("missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if sel.Current() != NewSession {
		t.Errorf("failed load changed selection to %q", sel.Current())
	}
}

func TestPersistNewSessionAssignsTimestampName(t *testing.T) {
	store := newTestStore(t)
	sel := NewSelector(store)

	transcript := []Message{HumanMessage("Hello"), AIMessage("Hi!")}
	if err := sel.Persist(transcript); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	name := sel.Current()
	if name == NewSession {
		t.Fatal("selection was not forced to the new session name")
	}
	if !strings.HasSuffix(name, ".json") {
		t.Fatalf("session name %q lacks .json suffix", name)
	}
	if _, err := time.Parse(TimestampLayout, strings.TrimSuffix(name, ".json")); err != nil {
		t.Errorf("session name %q is not timestamp-derived: %v", name, err)
	}

	loaded, err := store.Load(name)
	if err != nil {
		t.Fatalf("Load of new session failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("persisted transcript = %+v", loaded)
	}
}

func TestPersistEmptyNewSessionIsNoop(t *testing.T) {
	store := newTestStore(t)
	sel := NewSelector(store)

	if err := sel.Persist(nil); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if !sel.IsNew() {
		t.Error("empty persist should not bind the selector")
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("empty persist created files: %v", names)
	}
}

func TestPersistBoundSessionRewritesSameFile(t *testing.T) {
	store := newTestStore(t)
	sel := NewSelector(store)

	if err := sel.Persist([]Message{HumanMessage("a"), AIMessage("b")}); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	name := sel.Current()

	longer := []Message{
		HumanMessage("a"), AIMessage("b"),
		HumanMessage("c"), AIMessage("d"),
	}
	if err := sel.Persist(longer); err != nil {
		t.Fatalf("second Persist failed: %v", err)
	}

	if sel.Current() != name {
		t.Errorf("bound persist changed selection from %q to %q", name, sel.Current())
	}

	loaded, err := store.Load(name)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 4 {
		t.Errorf("expected 4 messages after rewrite, got %d", len(loaded))
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("bound persist created extra files: %v", names)
	}
}
