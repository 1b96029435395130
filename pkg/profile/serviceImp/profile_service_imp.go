package serviceImp

import (
	"context"
	"errors"
	"fmt"

	"agriplan/pkg/apperr"
	"agriplan/pkg/catalog"
	"agriplan/pkg/kvstore"
	"agriplan/pkg/profile/service"
)

type profileSvc struct {
	kv  kvstore.Store
	cat *catalog.Catalog
}

func NewProfileService(kv kvstore.Store, cat *catalog.Catalog) service.ProfileService {
	if cat == nil {
		cat = catalog.Default()
	}
	return &profileSvc{kv: kv, cat: cat}
}

func key(uid string) string { return "profile:" + uid }

func (s *profileSvc) Get(ctx context.Context, uid string) (service.UserProfile, error) {
	var p service.UserProfile
	err := s.kv.Get(ctx, key(uid), &p)
	if errors.Is(err, kvstore.ErrNotFound) {
		return service.UserProfile{}, nil
	}
	return p, err
}

// Put normalizes every non-empty value to its catalog slug and rejects values
// the catalog does not know.
func (s *profileSvc) Put(ctx context.Context, uid string, p service.UserProfile) (service.UserProfile, error) {
	var out service.UserProfile
	if p.Region != "" {
		if _, ok := s.cat.Region(p.Region); !ok {
			return out, fmt.Errorf("region %q: %w", p.Region, apperr.ErrInvalidInput)
		}
		out.Region = catalog.Slug(p.Region)
	}
	if p.SoilType != "" {
		if _, ok := s.cat.Soil(p.SoilType); !ok {
			return out, fmt.Errorf("soil type %q: %w", p.SoilType, apperr.ErrInvalidInput)
		}
		out.SoilType = catalog.Slug(p.SoilType)
	}
	if p.WaterSource != "" {
		if _, ok := s.cat.Water(p.WaterSource); !ok {
			return out, fmt.Errorf("water source %q: %w", p.WaterSource, apperr.ErrInvalidInput)
		}
		out.WaterSource = catalog.Slug(p.WaterSource)
	}
	if err := s.kv.Put(ctx, key(uid), out); err != nil {
		return service.UserProfile{}, err
	}
	return out, nil
}

func (s *profileSvc) Reset(ctx context.Context, uid string) error {
	return s.kv.Delete(ctx, key(uid))
}
