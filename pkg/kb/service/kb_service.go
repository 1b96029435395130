package service

import (
	"context"

	"agriplan/entities"
)

type Hit struct {
	entities.NoteChunk
	Score     float64 `json:"score"`
	DocTitle  string  `json:"doc_title,omitempty"`
	SourceURL string  `json:"source_url,omitempty"`
}

type NoteService interface {
	Ingest(ctx context.Context, title, crop, tags, text, sourceURL string) (*entities.NoteDocument, int, error)
	// Search ranks chunks by query term hits. crop narrows the search to notes
	// filed under that crop; empty searches everything.
	Search(ctx context.Context, query, crop string, k int) ([]Hit, error)
	Docs(ctx context.Context) ([]entities.NoteDocument, error)
}
