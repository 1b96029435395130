package service

import (
	"context"

	"agriplan/entities"
)

type FieldInput struct {
	Name         string  `json:"name"`
	AreaHectares float64 `json:"area_hectares"`
	Region       string  `json:"region"`
	SoilType     string  `json:"soil_type"`
	WaterSource  string  `json:"water_source"`
}

type FieldService interface {
	CreateField(ctx context.Context, uid string, in FieldInput) (*entities.Field, error)
	ListFields(ctx context.Context, uid string) ([]entities.Field, error)
	GetFieldByID(ctx context.Context, id uint, uid string) (*entities.Field, error)
	DeleteField(ctx context.Context, id uint, uid string) error
}
