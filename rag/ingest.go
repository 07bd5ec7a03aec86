package rag

import (
	"context"
	"fmt"
)

// Embedder turns text into embedding vectors. The Ollama client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// embedBatchSize bounds how many chunks go to the embedding model per call.
const embedBatchSize = 16

// Ingestor implements chat.Ingestor: extract text from uploaded PDFs, chunk
// it, embed the chunks, and add them to the vector index.
type Ingestor struct {
	splitter *Splitter
	embedder Embedder
	store    *VectorStore
}

func NewIngestor(embedder Embedder, store *VectorStore) *Ingestor {
	return &Ingestor{
		splitter: NewSplitter(),
		embedder: embedder,
		store:    store,
	}
}

// Ingest indexes each document. Ingestion produces no conversational output;
// it only feeds the retrieval index.
func (ing *Ingestor) Ingest(ctx context.Context, docs [][]byte) error {
	texts, err := ExtractTexts(docs)
	if err != nil {
		return err
	}
	return ing.ingestTexts(ctx, texts)
}

func (ing *Ingestor) ingestTexts(ctx context.Context, texts []string) error {
	var chunks []string
	for _, text := range texts {
		chunks = append(chunks, ing.splitter.Split(text)...)
	}
	if len(chunks) == 0 {
		return nil
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		embeddings, err := ing.embedder.Embed(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to embed chunks: %w", err)
		}
		if err := ing.store.Add(ctx, batch, embeddings); err != nil {
			return err
		}
	}

	return nil
}
