package rag

import (
	"context"
	"strings"

	"multichat/chat"
	"multichat/storage"
)

// GroundedResponder wraps a conversational responder so answers are grounded
// in retrieved document chunks instead of conversation memory alone. It
// implements chat.Responder for the document-grounded session mode.
type GroundedResponder struct {
	retriever *Retriever
	inner     chat.Responder
}

func NewGroundedResponder(retriever *Retriever, inner chat.Responder) *GroundedResponder {
	return &GroundedResponder{retriever: retriever, inner: inner}
}

// Respond retrieves the chunks most relevant to the question, stuffs them
// into the prompt, and delegates to the wrapped responder. With an empty
// index the question passes through unchanged.
func (g *GroundedResponder) Respond(ctx context.Context, userText string, history []storage.Message) (string, error) {
	chunks, err := g.retriever.Retrieve(ctx, userText)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return g.inner.Respond(ctx, userText, history)
	}

	var sb strings.Builder
	sb.WriteString("Answer the question using the following document excerpts.\n\n")
	for _, chunk := range chunks {
		sb.WriteString("---\n")
		sb.WriteString(chunk.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("---\n\nQuestion: ")
	sb.WriteString(userText)

	return g.inner.Respond(ctx, sb.String(), history)
}
