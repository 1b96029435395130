package repository

import (
	"context"

	"agriplan/entities"
)

type SoilRepository interface {
	Create(ctx context.Context, s *entities.SoilSample) error
	// Recent returns the newest samples first.
	Recent(ctx context.Context, uid string, limit int) ([]entities.SoilSample, error)
}
