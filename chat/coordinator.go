// Package chat implements the turn-taking coordinator: it accepts one
// triggering event per interaction cycle, routes it to the right external
// responder, and appends the resulting exchange to the in-memory transcript.
package chat

import (
	"context"
	"strings"

	"multichat/storage"
)

// Responder answers a user utterance given recent conversation history.
type Responder interface {
	Respond(ctx context.Context, userText string, history []storage.Message) (string, error)
}

// Transcriber converts audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Describer answers a question about an image.
type Describer interface {
	Describe(ctx context.Context, image []byte, question string) (string, error)
}

// Ingestor chunks and indexes documents for later retrieval.
type Ingestor interface {
	Ingest(ctx context.Context, docs [][]byte) error
}

// TurnInput is everything the user may have supplied for one cycle. Any
// combination of fields may be set; Cycle processes them in priority order.
type TurnInput struct {
	// Text is the pending typed question, if any.
	Text string
	// Audio is recorded or uploaded audio to transcribe.
	Audio []byte
	// AudioUploaded distinguishes an uploaded file (summarized) from a
	// recording (answered directly).
	AudioUploaded bool
	// Image is an uploaded image to describe.
	Image []byte
	// Documents are uploaded documents to ingest into the retrieval index.
	Documents [][]byte
}

func (in TurnInput) empty() bool {
	return strings.TrimSpace(in.Text) == "" &&
		len(in.Audio) == 0 &&
		len(in.Image) == 0 &&
		len(in.Documents) == 0
}

// Coordinator owns the active transcript for the duration of an interaction
// cycle and routes each input to its external responder. All external calls
// are synchronous; a cycle runs to completion before the next one starts.
type Coordinator struct {
	responder   Responder // plain conversational
	grounded    Responder // retrieval-grounded
	transcriber Transcriber
	describer   Describer
	ingestor    Ingestor

	memory     *WindowMemory
	transcript []storage.Message

	docGrounded bool
}

// Deps bundles the external collaborators. Responder is required; the others
// may be nil, disabling the corresponding turn type.
type Deps struct {
	Responder   Responder
	Grounded    Responder
	Transcriber Transcriber
	Describer   Describer
	Ingestor    Ingestor
}

func NewCoordinator(deps Deps, memory *WindowMemory) *Coordinator {
	if memory == nil {
		memory = NewWindowMemory(DefaultMemoryWindow)
	}
	return &Coordinator{
		responder:   deps.Responder,
		grounded:    deps.Grounded,
		transcriber: deps.Transcriber,
		describer:   deps.Describer,
		ingestor:    deps.Ingestor,
		memory:      memory,
	}
}

// Transcript returns the in-memory transcript in conversation order.
func (c *Coordinator) Transcript() []storage.Message {
	return c.transcript
}

// SetTranscript replaces the transcript, e.g. after a session switch.
func (c *Coordinator) SetTranscript(messages []storage.Message) {
	c.transcript = messages
}

// SetDocumentGrounded switches plain-text turns between the conversational
// responder and the retrieval-grounded one.
func (c *Coordinator) SetDocumentGrounded(grounded bool) {
	c.docGrounded = grounded
}

// DocumentGrounded reports the active response mode.
func (c *Coordinator) DocumentGrounded() bool {
	return c.docGrounded
}

// Cycle processes one interaction. Inputs present simultaneously are handled
// in priority order: documents, audio, image, plain text. An empty cycle is a
// no-op. A failing external call aborts the cycle without appending the
// failed exchange; messages appended by earlier steps of the same cycle are
// kept.
func (c *Coordinator) Cycle(ctx context.Context, in TurnInput) ([]storage.Message, error) {
	if in.empty() {
		return nil, nil
	}

	var appended []storage.Message

	if len(in.Documents) > 0 {
		if c.ingestor == nil {
			return appended, ErrNoIngestor
		}
		if err := c.ingestor.Ingest(ctx, in.Documents); err != nil {
			return appended, err
		}
	}

	if len(in.Audio) > 0 {
		if c.transcriber == nil {
			return appended, ErrNoTranscriber
		}
		text, err := c.transcriber.Transcribe(ctx, in.Audio)
		if err != nil {
			return appended, err
		}
		if in.AudioUploaded {
			text = SummarizeInstruction + text
		}
		pair, err := c.exchange(ctx, text)
		if err != nil {
			return appended, err
		}
		appended = append(appended, pair...)
	}

	text := strings.TrimSpace(in.Text)

	if len(in.Image) > 0 {
		if c.describer == nil {
			return appended, ErrNoDescriber
		}
		question := text
		if question == "" {
			question = DefaultImageQuestion
		}
		// One describer call per cycle; the answer serves both messages.
		answer, err := c.describer.Describe(ctx, in.Image, question)
		if err != nil {
			return appended, err
		}
		pair := c.append(question, answer)
		appended = append(appended, pair...)
	} else if text != "" {
		pair, err := c.exchange(ctx, text)
		if err != nil {
			return appended, err
		}
		appended = append(appended, pair...)
	}

	return appended, nil
}

// exchange routes user text to the active responder and appends the
// (human, ai) pair.
func (c *Coordinator) exchange(ctx context.Context, text string) ([]storage.Message, error) {
	responder := c.responder
	if c.docGrounded && c.grounded != nil {
		responder = c.grounded
	}
	if responder == nil {
		return nil, ErrNoResponder
	}

	answer, err := responder.Respond(ctx, text, c.memory.History(c.transcript))
	if err != nil {
		return nil, err
	}

	return c.append(text, answer), nil
}

// append records a completed exchange as an atomic (human, ai) pair.
func (c *Coordinator) append(question, answer string) []storage.Message {
	pair := []storage.Message{
		storage.HumanMessage(question),
		storage.AIMessage(answer),
	}
	c.transcript = append(c.transcript, pair...)
	return pair
}
