package repository

import (
	"context"

	"agriplan/entities"
)

type PlanRepository interface {
	// Create assigns the next version for the plan's user and crop.
	Create(ctx context.Context, p *entities.SavedPlan) error
	Latest(ctx context.Context, uid, crop string) (*entities.SavedPlan, error)
	List(ctx context.Context, uid, crop string) ([]entities.SavedPlan, error)
}
