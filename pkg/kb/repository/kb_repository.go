package repository

import (
	"context"

	"agriplan/entities"
)

type NoteRepository interface {
	CreateDoc(ctx context.Context, d *entities.NoteDocument, chunks []entities.NoteChunk) error
	ListDocs(ctx context.Context) ([]entities.NoteDocument, error)
	// Chunks returns every chunk, or only those of documents tagged with crop
	// when crop is non-empty.
	Chunks(ctx context.Context, crop string) ([]entities.NoteChunk, error)
	DocsByIDs(ctx context.Context, ids []uint) (map[uint]entities.NoteDocument, error)
}
