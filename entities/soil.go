package entities

import (
	"time"

	"agriplan/pkg/recommend"
)

// SoilSample is a soil reading the farmer saved for later use.
type SoilSample struct {
	SampleID uint   `gorm:"primaryKey" json:"sample_id"`
	UserID   string `gorm:"index" json:"user_id"`

	recommend.SoilReading `gorm:"embedded"`

	Note      string    `json:"note"`
	TakenAt   time.Time `gorm:"index" json:"taken_at"`
	CreatedAt time.Time `json:"created_at"`
}
