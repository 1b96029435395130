package repository

import (
	"context"
	"time"

	"agriplan/entities"
)

type Filter struct {
	From             time.Time // zero means no lower bound
	CropID           string
	IncludeCompleted bool
	Limit            int // zero means no limit
}

type ActivityRepository interface {
	List(ctx context.Context, uid string, f Filter) ([]entities.PlannedActivity, error)
	// SetCompleted sets the flag, or flips it when completed is nil.
	SetCompleted(ctx context.Context, id, uid string, completed *bool) (*entities.PlannedActivity, error)
}
