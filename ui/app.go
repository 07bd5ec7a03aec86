// Package ui is the terminal front-end: a transcript viewport, an input
// area, a session selector, transcript search, and an attach prompt for
// audio, image, and PDF files. All routing and persistence decisions live in
// the chat and storage packages; the UI only collects inputs and displays
// results.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"multichat/chat"
	"multichat/config"
	"multichat/ollama"
	"multichat/storage"
)

type AppView struct {
	cfg         *config.Config
	coordinator *chat.Coordinator
	selector    *storage.Selector

	// Optional: model listing/switching for the local Ollama provider.
	modelsClient *ollama.Client

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	// One interaction cycle at a time; input is disabled while a turn runs.
	// While a cycle runs on its own goroutine, rendering reads only these
	// mirrors; coordinator and selector state is re-synced from cycleDoneMsg
	// on the event loop.
	busy        bool
	errMsg      string
	transcript  []storage.Message
	sessionName string

	// Session selector modal
	showSessions    bool
	sessionChoices  []string
	filteredChoices []string
	selectedIdx     int
	filterInput     textinput.Model
	filtering       bool

	// Transcript search modal
	showSearch    bool
	searchInput   textinput.Model
	searchResults []storage.SessionMatch
	searchIdx     int
	searched      bool

	// Model picker modal
	showModels   bool
	modelChoices []string
	modelIdx     int

	// Attach prompt and queued inputs for the next cycle
	showAttach           bool
	attachInput          textinput.Model
	pendingAudio         []byte
	pendingAudioUploaded bool
	pendingImage         []byte
	pendingDocs          [][]byte
	attachNote           string
}

func NewAppView(cfg *config.Config, coordinator *chat.Coordinator, selector *storage.Selector) *AppView {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.Focus()
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	filter := textinput.New()
	filter.Placeholder = "filter sessions"

	search := textinput.New()
	search.Placeholder = "search all transcripts"

	attach := textinput.New()
	attach.Placeholder = "path to .pdf / image / audio file"

	return &AppView{
		cfg:         cfg,
		coordinator: coordinator,
		selector:    selector,
		textarea:    ta,
		spinner:     sp,
		filterInput: filter,
		searchInput: search,
		attachInput: attach,
		transcript:  coordinator.Transcript(),
		sessionName: selector.Current(),
	}
}

// SetModelClient enables the model picker, backed by a local Ollama client.
func (a *AppView) SetModelClient(client *ollama.Client) {
	a.modelsClient = client
}

func (a *AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a *AppView) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.showSessions {
		return a.sessionModalView()
	}
	if a.showSearch {
		return a.searchModalView()
	}
	if a.showModels {
		return a.modelModalView()
	}

	var b strings.Builder

	title := TitleStyle.Render("multichat")
	mode := "chat"
	if a.coordinator.DocumentGrounded() {
		mode = "pdf chat"
	}
	header := fmt.Sprintf("%s  %s  %s", title,
		DimStyle.Render("session: "+a.sessionName),
		DimStyle.Render("mode: "+mode))
	b.WriteString(truncateLine(header, a.width))
	b.WriteString("\n\n")

	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if a.busy {
		b.WriteString(a.spinner.View() + " Waiting for response...\n")
	} else {
		b.WriteString(a.textarea.View() + "\n")
	}

	if a.showAttach {
		b.WriteString("Attach file: " + a.attachInput.View() + "\n")
	}
	if a.attachNote != "" {
		b.WriteString(StatusStyle.Render(a.attachNote) + "\n")
	}
	if a.errMsg != "" {
		b.WriteString(ErrorStyle.Render("Error: "+a.errMsg) + "\n")
	}

	b.WriteString(FormatFooter(
		"enter", "Send",
		"ctrl+s", "Sessions",
		"ctrl+f", "Search",
		"ctrl+o", "Attach",
		"ctrl+d", "PDF mode",
		"ctrl+l", "Models",
		"ctrl+y", "Copy answer",
		"ctrl+c", "Quit",
	))

	return b.String()
}

func (a *AppView) sessionModalView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Chat Sessions") + "\n\n")

	if a.filtering {
		b.WriteString("Filter: " + a.filterInput.View() + "\n\n")
	}

	for i, name := range a.filteredChoices {
		line := "  " + name
		if i == a.selectedIdx {
			line = SelectedStyle.Render("> " + name)
		}
		b.WriteString(truncateLine(line, a.width) + "\n")
	}

	b.WriteString("\n" + FormatFooter(
		"j/k", "Navigate",
		"/", "Filter",
		"enter", "Select",
		"esc", "Close",
	))

	return b.String()
}

func (a *AppView) searchModalView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Search Transcripts") + "\n\n")
	b.WriteString("Query: " + a.searchInput.View() + "\n\n")

	if a.searched {
		if len(a.searchResults) == 0 {
			b.WriteString(DimStyle.Render("No matches.") + "\n")
		}
		for i, match := range a.searchResults {
			line := fmt.Sprintf("  %s: %s", match.Session, match.Preview)
			if i == a.searchIdx {
				line = SelectedStyle.Render(fmt.Sprintf("> %s: %s", match.Session, match.Preview))
			}
			b.WriteString(truncateLine(line, a.width) + "\n")
		}
	}

	b.WriteString("\n" + FormatFooter(
		"enter", "Search / Open session",
		"j/k", "Navigate",
		"esc", "Close",
	))

	return b.String()
}

func (a *AppView) modelModalView() string {
	var b strings.Builder
	current := ""
	if a.modelsClient != nil {
		current = "  " + DimStyle.Render("current: "+a.modelsClient.GetModel())
	}
	b.WriteString(TitleStyle.Render("Models") + current + "\n\n")

	for i, name := range a.modelChoices {
		line := "  " + name
		if i == a.modelIdx {
			line = SelectedStyle.Render("> " + name)
		}
		b.WriteString(truncateLine(line, a.width) + "\n")
	}

	b.WriteString("\n" + FormatFooter(
		"j/k", "Navigate",
		"enter", "Select",
		"esc", "Close",
	))

	return b.String()
}

// refreshViewport re-renders the transcript mirror into the viewport.
func (a *AppView) refreshViewport() {
	a.viewport.SetContent(renderTranscript(a.transcript, a.width))
	a.viewport.GotoBottom()
}
