package service

import (
	"context"
	"time"

	"agriplan/entities"
	"agriplan/pkg/recommend"
)

type SoilService interface {
	Save(ctx context.Context, uid string, r recommend.SoilReading, takenAt time.Time, note string) (*entities.SoilSample, error)
	Recent(ctx context.Context, uid string, limit int) ([]entities.SoilSample, error)
	// Latest reports false when the user has no saved reading.
	Latest(ctx context.Context, uid string) (recommend.SoilReading, bool, error)
}
