package serviceImp

import (
	"context"
	"fmt"
	"io"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/catalog"
	fieldRepo "agriplan/pkg/field/repository"
	"agriplan/pkg/plan/repository"
	"agriplan/pkg/plan/service"
	profileService "agriplan/pkg/profile/service"
	"agriplan/pkg/projection"
	"agriplan/pkg/report"
)

type PlanSvc struct {
	plans    repository.PlanRepository
	profiles profileService.ProfileService
	fields   fieldRepo.FieldRepository
	calc     *projection.Calculator
}

func NewPlanService(plans repository.PlanRepository, profiles profileService.ProfileService, fields fieldRepo.FieldRepository, cat *catalog.Catalog) service.PlanService {
	return &PlanSvc{plans: plans, profiles: profiles, fields: fields, calc: projection.New(cat)}
}

func (s *PlanSvc) FromField(ctx context.Context, uid string, fieldID uint, in projection.Input) (projection.Input, error) {
	f, err := s.fields.FindByID(ctx, fieldID, uid)
	if err != nil {
		return in, err
	}
	if in.Region == "" {
		in.Region = f.Region
	}
	if in.WaterSource == "" {
		in.WaterSource = f.WaterSource
	}
	if in.SoilType == "" {
		in.SoilType = f.SoilType
	}
	if in.AreaHectares == 0 {
		in.AreaHectares = f.AreaHectares
	}
	return in, nil
}

func (s *PlanSvc) fill(ctx context.Context, uid string, in projection.Input) (projection.Input, error) {
	if in.Region != "" && in.WaterSource != "" && in.SoilType != "" {
		return in, nil
	}
	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return in, err
	}
	if in.Region == "" {
		in.Region = p.Region
	}
	if in.WaterSource == "" {
		in.WaterSource = p.WaterSource
	}
	if in.SoilType == "" {
		in.SoilType = p.SoilType
	}
	return in, nil
}

func (s *PlanSvc) Project(ctx context.Context, uid string, in projection.Input) (service.Result, error) {
	in, err := s.fill(ctx, uid, in)
	if err != nil {
		return service.Result{}, err
	}
	p, err := s.calc.Project(in)
	if err != nil {
		return service.Result{}, err
	}
	return service.Result{Projection: p, Advice: s.calc.Advise(in)}, nil
}

func (s *PlanSvc) Save(ctx context.Context, uid string, in projection.Input) (*entities.SavedPlan, error) {
	if in.Crop == "" {
		return nil, fmt.Errorf("crop is required: %w", apperr.ErrInvalidInput)
	}
	r, err := s.Project(ctx, uid, in)
	if err != nil {
		return nil, err
	}
	sp := &entities.SavedPlan{
		UserID: uid,
		Crop:   catalog.Slug(in.Crop),
		Input:  r.Input,
		Base:   r.Base,
	}
	if err := s.plans.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *PlanSvc) History(ctx context.Context, uid, crop string) ([]entities.SavedPlan, error) {
	if crop != "" {
		crop = catalog.Slug(crop)
	}
	return s.plans.List(ctx, uid, crop)
}

func (s *PlanSvc) Latest(ctx context.Context, uid, crop string) (*entities.SavedPlan, error) {
	if crop == "" {
		return nil, fmt.Errorf("crop is required: %w", apperr.ErrInvalidInput)
	}
	return s.plans.Latest(ctx, uid, catalog.Slug(crop))
}

func (s *PlanSvc) Export(ctx context.Context, uid string, in projection.Input, format string, w io.Writer) (string, string, error) {
	r, err := s.Project(ctx, uid, in)
	if err != nil {
		return "", "", err
	}
	name := "business-plan"
	if in.Crop != "" {
		name += "-" + catalog.Slug(in.Crop)
	}
	switch format {
	case service.FormatXLSX, "":
		return report.MIMEXLSX, name + ".xlsx", report.WriteXLSX(w, r.Projection)
	case service.FormatCSV:
		return report.MIMECSV, name + ".csv", report.WriteCSV(w, r.Projection)
	}
	return "", "", fmt.Errorf("format %q: %w", format, apperr.ErrInvalidInput)
}
