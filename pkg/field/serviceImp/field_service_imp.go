package serviceImp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/catalog"
	repo "agriplan/pkg/field/repository"
	"agriplan/pkg/field/service"
)

type fieldSvc struct {
	r   repo.FieldRepository
	cat *catalog.Catalog
}

func NewFieldService(r repo.FieldRepository, cat *catalog.Catalog) service.FieldService {
	if cat == nil {
		cat = catalog.Default()
	}
	return &fieldSvc{r: r, cat: cat}
}

func (s *fieldSvc) CreateField(ctx context.Context, uid string, in service.FieldInput) (*entities.Field, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("field name is required: %w", apperr.ErrInvalidInput)
	}
	a := in.AreaHectares
	if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
		return nil, fmt.Errorf("area %v: %w", a, apperr.ErrInvalidInput)
	}
	f := &entities.Field{UserID: uid, Name: name, AreaHectares: a}
	if in.Region != "" {
		if _, ok := s.cat.Region(in.Region); !ok {
			return nil, fmt.Errorf("region %q: %w", in.Region, apperr.ErrInvalidInput)
		}
		f.Region = catalog.Slug(in.Region)
	}
	if in.SoilType != "" {
		if _, ok := s.cat.Soil(in.SoilType); !ok {
			return nil, fmt.Errorf("soil type %q: %w", in.SoilType, apperr.ErrInvalidInput)
		}
		f.SoilType = catalog.Slug(in.SoilType)
	}
	if in.WaterSource != "" {
		if _, ok := s.cat.Water(in.WaterSource); !ok {
			return nil, fmt.Errorf("water source %q: %w", in.WaterSource, apperr.ErrInvalidInput)
		}
		f.WaterSource = catalog.Slug(in.WaterSource)
	}
	if err := s.r.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) ListFields(ctx context.Context, uid string) ([]entities.Field, error) {
	return s.r.List(ctx, uid)
}

func (s *fieldSvc) GetFieldByID(ctx context.Context, id uint, uid string) (*entities.Field, error) {
	return s.r.FindByID(ctx, id, uid)
}

func (s *fieldSvc) DeleteField(ctx context.Context, id uint, uid string) error {
	return s.r.Delete(ctx, id, uid)
}
