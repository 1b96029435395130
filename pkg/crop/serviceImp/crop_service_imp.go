package serviceImp

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/catalog"
	"agriplan/pkg/crop/repository"
	"agriplan/pkg/crop/service"
	"agriplan/pkg/logger"
	"agriplan/pkg/schedule"
)

type cropSvc struct {
	r   repository.CropRepository
	cat *catalog.Catalog
	now func() time.Time

	// one accept per user at a time; a double tap joins the running call
	inflight singleflight.Group
}

func NewCropService(r repository.CropRepository, cat *catalog.Catalog) service.CropService {
	return NewCropServiceWithClock(r, cat, time.Now)
}

func NewCropServiceWithClock(r repository.CropRepository, cat *catalog.Catalog, now func() time.Time) service.CropService {
	if cat == nil {
		cat = catalog.Default()
	}
	return &cropSvc{r: r, cat: cat, now: now}
}

func (s *cropSvc) plannable(name string) (catalog.CropProfile, error) {
	p, ok := s.cat.Crop(name)
	if !ok || !p.Plannable() {
		return catalog.CropProfile{}, fmt.Errorf("%q: %w", name, apperr.ErrUnknownCrop)
	}
	return p, nil
}

func area(v float64) (float64, error) {
	if v == 0 {
		return service.DefaultAreaHectares, nil
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("area %v: %w", v, apperr.ErrInvalidInput)
	}
	return v, nil
}

func (s *cropSvc) AcceptRecommendation(ctx context.Context, uid string, req service.AcceptRequest) (*entities.PlannedCrop, error) {
	key := fmt.Sprintf("%s|%s|%v", uid, catalog.Slug(req.Crop), req.Replace)
	v, err, shared := s.inflight.Do(key, func() (any, error) {
		return s.accept(ctx, uid, req)
	})
	if shared {
		logger.Debug("duplicate accept collapsed", zap.String("uid", uid), zap.String("crop", req.Crop))
	}
	if err != nil {
		return nil, err
	}
	return v.(*entities.PlannedCrop), nil
}

func (s *cropSvc) accept(ctx context.Context, uid string, req service.AcceptRequest) (*entities.PlannedCrop, error) {
	p, err := s.plannable(req.Crop)
	if err != nil {
		return nil, err
	}
	if err := req.Reading.Validate(); err != nil {
		return nil, err
	}
	ha, err := area(req.AreaHectares)
	if err != nil {
		return nil, err
	}

	today := schedule.StartOfDay(s.now())
	planted := today
	if !req.PlantingDate.IsZero() {
		planted = schedule.StartOfDay(req.PlantingDate)
	}

	reading := req.Reading
	c := &entities.PlannedCrop{
		ID:           uuid.NewString(),
		UserID:       uid,
		CropName:     p.Name,
		Variety:      p.DefaultVariety(),
		PlantingDate: planted,
		HarvestDate:  schedule.HarvestDate(p, planted),
		Status:       entities.StatusPlanning,
		Field:        service.DefaultField,
		AreaHectares: ha,
		Notes: fmt.Sprintf("Recommended based on soil analysis (N:%g, P:%g, K:%g, pH:%g)",
			reading.N, reading.P, reading.K, reading.PH),
		Recommended: true,
		SoilReading: &reading,
	}
	acts := s.activities(c, p, today)
	if err := s.r.ReplaceAll(ctx, uid, c, acts, req.Replace); err != nil {
		return nil, err
	}
	c.Activities = acts
	logger.Info("recommended crop accepted",
		zap.String("uid", uid), zap.String("crop", c.CropName), zap.Int("activities", len(acts)))
	return c, nil
}

func (s *cropSvc) activities(c *entities.PlannedCrop, p catalog.CropProfile, today time.Time) []entities.PlannedActivity {
	acts := schedule.DeriveActivities(c.ID, p, c.PlantingDate, today)
	for i := range acts {
		acts[i].UserID = c.UserID
		acts[i].Recommended = c.Recommended
	}
	return acts
}

func (s *cropSvc) AddCrop(ctx context.Context, uid string, req service.AddRequest) (*entities.PlannedCrop, error) {
	p, err := s.plannable(req.Crop)
	if err != nil {
		return nil, err
	}
	ha, err := area(req.AreaHectares)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = entities.StatusPlanning
	}
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, apperr.ErrInvalidInput)
	}

	today := schedule.StartOfDay(s.now())
	planted := today
	if !req.PlantingDate.IsZero() {
		planted = schedule.StartOfDay(req.PlantingDate)
	}
	variety := strings.TrimSpace(req.Variety)
	if variety == "" {
		variety = p.DefaultVariety()
	}
	field := strings.TrimSpace(req.Field)
	if field == "" {
		field = service.DefaultField
	}

	c := &entities.PlannedCrop{
		ID:           uuid.NewString(),
		UserID:       uid,
		CropName:     p.Name,
		Variety:      variety,
		PlantingDate: planted,
		HarvestDate:  schedule.HarvestDate(p, planted),
		Status:       status,
		Field:        field,
		AreaHectares: ha,
		Notes:        req.Notes,
	}
	acts := s.activities(c, p, today)
	if err := s.r.Create(ctx, c, acts); err != nil {
		return nil, err
	}
	c.Activities = acts
	return c, nil
}

func (s *cropSvc) List(ctx context.Context, uid string) ([]entities.PlannedCrop, error) {
	return s.r.List(ctx, uid)
}

func (s *cropSvc) Get(ctx context.Context, id, uid string) (*entities.PlannedCrop, error) {
	return s.r.FindByID(ctx, id, uid)
}

func (s *cropSvc) UpdateStatus(ctx context.Context, id, uid string, status entities.CropStatus) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, apperr.ErrInvalidInput)
	}
	return s.r.UpdateStatus(ctx, id, uid, status)
}

func (s *cropSvc) Delete(ctx context.Context, id, uid string) error {
	return s.r.Delete(ctx, id, uid)
}

func (s *cropSvc) Summary(ctx context.Context, uid string) (repository.Summary, error) {
	return s.r.Summary(ctx, uid)
}
