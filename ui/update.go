package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"multichat/chat"
	"multichat/config"
	"multichat/storage"
)

// cycleDoneMsg carries everything the cycle goroutine changed back to the
// event loop: the UI mirrors are updated here, never from the goroutine.
type cycleDoneMsg struct {
	Appended   []storage.Message
	Transcript []storage.Message
	Session    string
	Err        error
}

type sessionsLoadedMsg struct {
	Choices []string
	Err     error
}

type sessionSwitchedMsg struct {
	Name     string
	Messages []storage.Message
	Err      error
}

type searchResultsMsg struct {
	Matches []storage.SessionMatch
	Err     error
}

type modelsLoadedMsg struct {
	Names []string
	Err   error
}

func (a *AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		inputHeight := 7
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = msg.Height - inputHeight
		}
		a.textarea.SetWidth(msg.Width - 2)
		a.refreshViewport()
		return a, nil

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case cycleDoneMsg:
		a.busy = false
		a.transcript = msg.Transcript
		a.sessionName = msg.Session
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			config.Debugf("[ui] cycle failed: %v", msg.Err)
		} else {
			config.Debugf("[ui] cycle done: %d message(s) appended, session=%s",
				len(msg.Appended), msg.Session)
		}
		if len(msg.Appended) > 0 {
			a.attachNote = ""
		}
		a.refreshViewport()
		return a, nil

	case sessionsLoadedMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.sessionChoices = msg.Choices
		a.filteredChoices = msg.Choices
		a.selectedIdx = 0
		a.showSessions = true
		return a, nil

	case sessionSwitchedMsg:
		a.showSessions = false
		a.showSearch = false
		a.filtering = false
		a.filterInput.Reset()
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			config.Debugf("[ui] session switch to %s failed: %v", msg.Name, msg.Err)
			return a, nil
		}
		a.coordinator.SetTranscript(msg.Messages)
		a.transcript = msg.Messages
		a.sessionName = msg.Name
		a.errMsg = ""
		config.Debugf("[ui] switched to session %s (%d messages)", msg.Name, len(msg.Messages))
		a.refreshViewport()
		return a, nil

	case searchResultsMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.searchResults = msg.Matches
		a.searchIdx = 0
		a.searched = true
		return a, nil

	case modelsLoadedMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.modelChoices = msg.Names
		a.modelIdx = 0
		a.showModels = true
		return a, nil

	case tea.KeyMsg:
		if a.showSessions {
			return a.updateSessionModal(msg)
		}
		if a.showSearch {
			return a.updateSearchModal(msg)
		}
		if a.showModels {
			return a.updateModelModal(msg)
		}
		if a.showAttach {
			return a.updateAttachPrompt(msg)
		}
		return a.updateChat(msg)
	}

	if !a.busy {
		var cmd tea.Cmd
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a *AppView) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the cycle goroutine owns coordinator and selector, only quitting
	// is allowed; every other key would touch shared state.
	if a.busy && msg.String() != "ctrl+c" {
		return a, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "ctrl+s":
		sel := a.selector
		return a, func() tea.Msg {
			choices, err := sel.Choices()
			return sessionsLoadedMsg{Choices: choices, Err: err}
		}

	case "ctrl+f":
		a.showSearch = true
		a.searched = false
		a.searchResults = nil
		a.searchInput.Reset()
		a.searchInput.Focus()
		a.textarea.Blur()
		return a, textarea.Blink

	case "ctrl+l":
		if a.modelsClient == nil {
			a.errMsg = "model switching requires the Ollama provider"
			return a, nil
		}
		client := a.modelsClient
		return a, func() tea.Msg {
			models, err := client.ListModels(context.Background())
			if err != nil {
				return modelsLoadedMsg{Err: err}
			}
			names := make([]string, len(models))
			for i, m := range models {
				names[i] = m.Name
			}
			return modelsLoadedMsg{Names: names}
		}

	case "ctrl+o":
		a.showAttach = true
		a.attachInput.Focus()
		a.textarea.Blur()
		return a, textarea.Blink

	case "ctrl+d":
		a.coordinator.SetDocumentGrounded(!a.coordinator.DocumentGrounded())
		config.Debugf("[ui] document-grounded mode: %v", a.coordinator.DocumentGrounded())
		return a, nil

	case "ctrl+y":
		for i := len(a.transcript) - 1; i >= 0; i-- {
			if a.transcript[i].Type == storage.RoleAI {
				if err := clipboard.WriteAll(a.transcript[i].Content); err != nil {
					a.errMsg = err.Error()
				}
				break
			}
		}
		return a, nil

	case "enter":
		return a.submitCycle()
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// submitCycle packages the pending text and any attached files into one
// TurnInput and runs the coordinator in the background. The goroutine owns
// coordinator and selector for the duration; the resulting state comes back
// in cycleDoneMsg and is applied on the event loop.
func (a *AppView) submitCycle() (tea.Model, tea.Cmd) {
	in := chat.TurnInput{
		Text:          a.textarea.Value(),
		Audio:         a.pendingAudio,
		AudioUploaded: a.pendingAudioUploaded,
		Image:         a.pendingImage,
		Documents:     a.pendingDocs,
	}

	if strings.TrimSpace(in.Text) == "" && len(in.Audio) == 0 &&
		len(in.Image) == 0 && len(in.Documents) == 0 {
		return a, nil
	}

	// Pending buffers are consumed by this cycle.
	a.textarea.Reset()
	a.pendingAudio = nil
	a.pendingAudioUploaded = false
	a.pendingImage = nil
	a.pendingDocs = nil

	a.busy = true
	a.errMsg = ""

	config.Debugf("[ui] cycle start: text=%d bytes audio=%d image=%d docs=%d",
		len(in.Text), len(in.Audio), len(in.Image), len(in.Documents))

	coordinator := a.coordinator
	selector := a.selector
	return a, tea.Batch(a.spinner.Tick, func() tea.Msg {
		appended, err := coordinator.Cycle(context.Background(), in)
		if err == nil && len(appended) > 0 {
			if perr := selector.Persist(coordinator.Transcript()); perr != nil {
				err = perr
				config.Debugf("[ui] persist failed: %v", perr)
			} else {
				config.Debugf("[ui] persisted %d message(s) to %s",
					len(coordinator.Transcript()), selector.Current())
			}
		}
		return cycleDoneMsg{
			Appended:   appended,
			Transcript: coordinator.Transcript(),
			Session:    selector.Current(),
			Err:        err,
		}
	})
}

func (a *AppView) updateSessionModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filtering {
		switch msg.String() {
		case "esc":
			a.filtering = false
			a.filterInput.Reset()
			a.filteredChoices = a.sessionChoices
			a.selectedIdx = 0
			return a, nil
		case "enter":
			a.filtering = false
			return a, nil
		default:
			var cmd tea.Cmd
			a.filterInput, cmd = a.filterInput.Update(msg)
			a.filteredChoices = storage.FilterNames(a.sessionChoices, a.filterInput.Value())
			if a.selectedIdx >= len(a.filteredChoices) {
				a.selectedIdx = 0
			}
			return a, cmd
		}
	}

	switch msg.String() {
	case "esc", "q":
		a.showSessions = false
		return a, nil

	case "/":
		a.filtering = true
		a.filterInput.Focus()
		return a, textarea.Blink

	case "j", "down":
		if a.selectedIdx < len(a.filteredChoices)-1 {
			a.selectedIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedIdx > 0 {
			a.selectedIdx--
		}
		return a, nil

	case "enter":
		if len(a.filteredChoices) == 0 {
			return a, nil
		}
		name := a.filteredChoices[a.selectedIdx]
		selector := a.selector
		return a, func() tea.Msg {
			messages, err := selector.Select(name)
			return sessionSwitchedMsg{Name: name, Messages: messages, Err: err}
		}
	}

	return a, nil
}

// updateSearchModal drives the two-phase search flow: type a query and press
// enter to search, then navigate the hits and press enter again to open the
// matching session.
func (a *AppView) updateSearchModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showSearch = false
		a.searchInput.Reset()
		a.textarea.Focus()
		return a, nil

	case "enter":
		if !a.searched {
			query := strings.TrimSpace(a.searchInput.Value())
			if query == "" {
				return a, nil
			}
			store := a.selector.Store()
			config.Debugf("[ui] searching transcripts for %q", query)
			return a, func() tea.Msg {
				matches, err := store.SearchSessions(query)
				return searchResultsMsg{Matches: matches, Err: err}
			}
		}
		if len(a.searchResults) == 0 {
			return a, nil
		}
		name := a.searchResults[a.searchIdx].Session
		selector := a.selector
		return a, func() tea.Msg {
			messages, err := selector.Select(name)
			return sessionSwitchedMsg{Name: name, Messages: messages, Err: err}
		}

	case "j", "down":
		if a.searched && a.searchIdx < len(a.searchResults)-1 {
			a.searchIdx++
		}
		return a, nil

	case "k", "up":
		if a.searched && a.searchIdx > 0 {
			a.searchIdx--
		}
		return a, nil
	}

	if !a.searched {
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *AppView) updateModelModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.showModels = false
		return a, nil

	case "j", "down":
		if a.modelIdx < len(a.modelChoices)-1 {
			a.modelIdx++
		}
		return a, nil

	case "k", "up":
		if a.modelIdx > 0 {
			a.modelIdx--
		}
		return a, nil

	case "enter":
		if len(a.modelChoices) == 0 {
			return a, nil
		}
		name := a.modelChoices[a.modelIdx]
		a.modelsClient.SetModel(name)
		a.showModels = false
		a.attachNote = "model: " + name
		config.Debugf("[ui] switched chat model to %s", name)
		return a, nil
	}

	return a, nil
}

func (a *AppView) updateAttachPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showAttach = false
		a.attachInput.Reset()
		a.textarea.Focus()
		return a, nil

	case "enter":
		path := strings.TrimSpace(a.attachInput.Value())
		a.showAttach = false
		a.attachInput.Reset()
		a.textarea.Focus()
		if path == "" {
			return a, nil
		}
		if err := a.attachFile(path); err != nil {
			a.errMsg = err.Error()
			config.Debugf("[ui] attach failed: %v", err)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.attachInput, cmd = a.attachInput.Update(msg)
	return a, cmd
}

// attachFile reads a file and queues it for the next cycle based on its
// extension.
func (a *AppView) attachFile(path string) error {
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		a.pendingDocs = append(a.pendingDocs, data)
		a.attachNote = fmt.Sprintf("%d document(s) queued for ingestion", len(a.pendingDocs))
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		a.pendingImage = data
		a.attachNote = "image queued: " + filepath.Base(path)
	case ".wav", ".mp3", ".m4a", ".ogg", ".flac":
		a.pendingAudio = data
		a.pendingAudioUploaded = true
		a.attachNote = "audio queued: " + filepath.Base(path)
	default:
		return fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	return nil
}
