package serviceImp

import (
	"context"
	"time"

	"agriplan/entities"
	"agriplan/pkg/recommend"
	repo "agriplan/pkg/soil/repository"
	"agriplan/pkg/soil/service"
)

type soilSvc struct{ r repo.SoilRepository }

func NewSoilService(r repo.SoilRepository) service.SoilService { return &soilSvc{r} }

func (s *soilSvc) Save(ctx context.Context, uid string, r recommend.SoilReading, takenAt time.Time, note string) (*entities.SoilSample, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	m := &entities.SoilSample{UserID: uid, SoilReading: r, TakenAt: takenAt, Note: note}
	if err := s.r.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *soilSvc) Recent(ctx context.Context, uid string, limit int) ([]entities.SoilSample, error) {
	return s.r.Recent(ctx, uid, limit)
}

func (s *soilSvc) Latest(ctx context.Context, uid string) (recommend.SoilReading, bool, error) {
	out, err := s.r.Recent(ctx, uid, 1)
	if err != nil || len(out) == 0 {
		return recommend.SoilReading{}, false, err
	}
	return out[0].SoilReading, true, nil
}
