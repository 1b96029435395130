package service

import (
	"context"
	"time"

	"agriplan/entities"
	"agriplan/pkg/crop/repository"
	"agriplan/pkg/recommend"
)

const (
	DefaultAreaHectares = 5.0
	DefaultField        = "Select field"
)

// AcceptRequest adds a recommended crop to the user's plan.
type AcceptRequest struct {
	Crop         string
	AreaHectares float64 // zero means DefaultAreaHectares
	Reading      recommend.SoilReading
	PlantingDate time.Time // zero means today
	Replace      bool
}

type AddRequest struct {
	Crop         string
	Variety      string
	PlantingDate time.Time
	Status       entities.CropStatus
	Field        string
	AreaHectares float64
	Notes        string
}

type CropService interface {
	AcceptRecommendation(ctx context.Context, uid string, req AcceptRequest) (*entities.PlannedCrop, error)
	AddCrop(ctx context.Context, uid string, req AddRequest) (*entities.PlannedCrop, error)
	List(ctx context.Context, uid string) ([]entities.PlannedCrop, error)
	Get(ctx context.Context, id, uid string) (*entities.PlannedCrop, error)
	UpdateStatus(ctx context.Context, id, uid string, status entities.CropStatus) error
	Delete(ctx context.Context, id, uid string) error
	Summary(ctx context.Context, uid string) (repository.Summary, error)
}
