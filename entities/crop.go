package entities

import (
	"time"

	"agriplan/pkg/catalog"
	"agriplan/pkg/recommend"
)

type CropStatus string

const (
	StatusPlanning       CropStatus = "Planning"
	StatusPlanted        CropStatus = "Planted"
	StatusGrowing        CropStatus = "Growing"
	StatusReadyToHarvest CropStatus = "Ready to Harvest"
)

func (s CropStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusPlanted, StatusGrowing, StatusReadyToHarvest:
		return true
	}
	return false
}

type PlannedCrop struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       string     `gorm:"index" json:"user_id"`
	CropName     string     `json:"crop_name"`
	Variety      string     `json:"variety"`
	PlantingDate time.Time  `json:"planting_date"`
	HarvestDate  time.Time  `json:"harvest_date"`
	Status       CropStatus `json:"status"`
	Field        string     `json:"field"`
	AreaHectares float64    `json:"area_hectares"`
	Notes        string     `json:"notes"`
	Recommended  bool       `json:"recommended"`

	// reading the recommendation was made from, nil for manual entries
	SoilReading *recommend.SoilReading `gorm:"serializer:json" json:"soil_reading,omitempty"`

	Activities []PlannedActivity `gorm:"foreignKey:CropID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlannedActivity struct {
	ID          string               `gorm:"primaryKey;size:64" json:"id"`
	CropID      string               `gorm:"index;size:36" json:"crop_id"`
	UserID      string               `gorm:"index" json:"user_id"`
	Type        catalog.ActivityType `json:"type"`
	DueDate     time.Time            `gorm:"index" json:"due_date"`
	Notes       string               `json:"notes"`
	Completed   bool                 `json:"completed"`
	Recommended bool                 `json:"recommended"`
	CreatedAt   time.Time            `json:"created_at"`
}
