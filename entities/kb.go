package entities

import "time"

// NoteDocument is one ingested source of crop notes.
type NoteDocument struct {
	DocID     uint      `gorm:"primaryKey" json:"doc_id"`
	Title     string    `json:"title"`
	Crop      string    `gorm:"index" json:"crop"`
	SourceURL string    `json:"source_url"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteChunk struct {
	ChunkID   uint      `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint      `gorm:"index" json:"doc_id"`
	Ord       int       `json:"ord"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
