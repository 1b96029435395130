package entities

import (
	"time"

	"agriplan/pkg/projection"
)

// SavedPlan is a business plan the user chose to keep. Version counts up per
// user and crop.
type SavedPlan struct {
	PlanID    uint                `gorm:"primaryKey" json:"plan_id"`
	UserID    string              `gorm:"index" json:"user_id"`
	Crop      string              `gorm:"index" json:"crop"`
	Version   int                 `json:"version"`
	Input     projection.Input    `gorm:"serializer:json" json:"input"`
	Base      projection.Scenario `gorm:"serializer:json" json:"base"`
	CreatedAt time.Time           `json:"created_at"`
}
