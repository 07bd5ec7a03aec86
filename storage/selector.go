package storage

// NewSession is the sentinel selection for a transcript that has not been
// persisted yet. It is always the first entry in Choices.
const NewSession = "new_session"

// Selector tracks which session the transcript on screen belongs to. It is
// either unbound (NewSession, no file on disk) or bound to a stored session
// name. The selector owns the state that was previously scattered across
// ad-hoc UI flags: current selection, and whether the last save minted a
// fresh session file.
type Selector struct {
	store   *HistoryStore
	current string
}

// NewSelector starts unbound.
func NewSelector(store *HistoryStore) *Selector {
	return &Selector{store: store, current: NewSession}
}

// Current returns the active selection: NewSession or a stored session name.
func (sel *Selector) Current() string {
	return sel.current
}

// Store exposes the backing history store, e.g. for transcript search.
func (sel *Selector) Store() *HistoryStore {
	return sel.store
}

// IsNew reports whether the active transcript has no backing file yet.
func (sel *Selector) IsNew() bool {
	return sel.current == NewSession
}

// Choices returns the selectable session names: NewSession followed by every
// stored session file.
func (sel *Selector) Choices() ([]string, error) {
	names, err := sel.store.List()
	if err != nil {
		return nil, err
	}
	return append([]string{NewSession}, names...), nil
}

// Select switches the active session. Selecting NewSession yields an empty
// transcript; selecting a stored name loads its transcript. A failed load is
// fatal to the cycle: the selection is left unchanged and the error surfaces
// to the caller.
func (sel *Selector) Select(name string) ([]Message, error) {
	if name == NewSession {
		sel.current = NewSession
		return nil, nil
	}

	messages, err := sel.store.Load(name)
	if err != nil {
		return nil, err
	}

	sel.current = name
	return messages, nil
}

// Persist writes the transcript to the active session. An unbound non-empty
// transcript is assigned a fresh timestamp-derived name first; the selection
// is forced to that name so the next render shows it selected, without
// re-loading (the in-memory transcript already holds the new messages).
// Empty unbound transcripts are not persisted at all.
func (sel *Selector) Persist(messages []Message) error {
	if sel.current == NewSession {
		if len(messages) == 0 {
			return nil
		}
		name := Timestamp() + ".json"
		if err := sel.store.Save(messages, name); err != nil {
			return err
		}
		sel.current = name
		return nil
	}

	return sel.store.Save(messages, sel.current)
}
