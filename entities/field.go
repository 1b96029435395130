package entities

import "time"

// Field is one of the user's plots. Region, soil type and water source are
// catalog slugs and may be empty.
type Field struct {
	FieldID      uint      `gorm:"primaryKey" json:"field_id"`
	UserID       string    `gorm:"index" json:"user_id"`
	Name         string    `json:"name"`
	AreaHectares float64   `json:"area_hectares"`
	Region       string    `json:"region"`
	SoilType     string    `json:"soil_type"`
	WaterSource  string    `json:"water_source"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
