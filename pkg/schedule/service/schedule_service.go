package service

import (
	"context"

	"agriplan/entities"
)

const DefaultUpcomingLimit = 5

type ActivityService interface {
	// Upcoming lists open activities due today or later, soonest first.
	Upcoming(ctx context.Context, uid string, limit int) ([]entities.PlannedActivity, error)
	ForCrop(ctx context.Context, uid, cropID string) ([]entities.PlannedActivity, error)
	// SetCompleted flips the flag when completed is nil.
	SetCompleted(ctx context.Context, id, uid string, completed *bool) (*entities.PlannedActivity, error)
}
