package serviceImp

import (
	"context"
	"time"

	"agriplan/entities"
	"agriplan/pkg/schedule"
	repo "agriplan/pkg/schedule/repository"
	"agriplan/pkg/schedule/service"
)

type activitySvc struct {
	r   repo.ActivityRepository
	now func() time.Time
}

func NewActivityService(r repo.ActivityRepository, now func() time.Time) service.ActivityService {
	if now == nil {
		now = time.Now
	}
	return &activitySvc{r: r, now: now}
}

func (s *activitySvc) Upcoming(ctx context.Context, uid string, limit int) ([]entities.PlannedActivity, error) {
	if limit <= 0 {
		limit = service.DefaultUpcomingLimit
	}
	return s.r.List(ctx, uid, repo.Filter{From: schedule.StartOfDay(s.now()), Limit: limit})
}

func (s *activitySvc) ForCrop(ctx context.Context, uid, cropID string) ([]entities.PlannedActivity, error) {
	return s.r.List(ctx, uid, repo.Filter{CropID: cropID, IncludeCompleted: true})
}

func (s *activitySvc) SetCompleted(ctx context.Context, id, uid string, completed *bool) (*entities.PlannedActivity, error) {
	return s.r.SetCompleted(ctx, id, uid, completed)
}
