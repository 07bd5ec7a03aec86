// Package rag implements the document retrieval pipeline: PDF text
// extraction, chunking, embedding, a SQLite-backed vector index, and a
// retrieval-grounded responder on top of it.
package rag

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text out of a PDF given as bytes.
func ExtractText(pdfBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var sb bytes.Buffer
	if _, err := io.Copy(&sb, textReader); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	return sb.String(), nil
}

// ExtractTexts extracts text from each document in order.
func ExtractTexts(docs [][]byte) ([]string, error) {
	texts := make([]string, 0, len(docs))
	for i, doc := range docs {
		text, err := ExtractText(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}
