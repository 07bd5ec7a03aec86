package ui

import (
	"fmt"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"

	"multichat/storage"
)

// renderMarkdown renders assistant output for the terminal. Autolink is
// disabled so plain URLs stay plain and the terminal emulator handles them.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	customExt := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(width-4, 0)
	doc := p.Parse([]byte(content))
	return strings.TrimRight(string(gomarkdown.Render(doc, r)), "\n")
}

// renderTranscript formats the whole conversation for the viewport.
func renderTranscript(messages []storage.Message, width int) string {
	if len(messages) == 0 {
		return DimStyle.Render("No messages yet. Start chatting!")
	}

	var content strings.Builder
	for _, msg := range messages {
		if msg.Type == storage.RoleHuman {
			role := UserStyle.Render("You")
			content.WriteString(fmt.Sprintf("%s\n%s\n\n", role, msg.Content))
		} else {
			role := AssistantStyle.Render("Assistant")
			content.WriteString(fmt.Sprintf("%s\n%s\n\n", role, renderMarkdown(msg.Content, width)))
		}
	}

	return content.String()
}

// truncateLine trims a display line to the given cell width, emoji-safe.
func truncateLine(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
