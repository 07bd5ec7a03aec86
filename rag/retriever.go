package rag

import (
	"context"
	"fmt"
)

// DefaultTopK is how many chunks ground a retrieval-backed answer.
const DefaultTopK = 4

// Retriever answers similarity queries against the vector index.
type Retriever struct {
	embedder Embedder
	store    *VectorStore
	topK     int
}

func NewRetriever(embedder Embedder, store *VectorStore) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		topK:     DefaultTopK,
	}
}

// Retrieve embeds the query and returns the most similar chunks, best first.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Chunk, error) {
	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	return r.store.Query(ctx, embeddings[0], r.topK)
}
