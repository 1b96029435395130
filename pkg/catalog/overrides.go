package catalog

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the shape of the optional catalog overrides file:
//
//	crops:
//	  wheat:
//	    revenue_factor: 1.05
//	regions:
//	  fes-meknes: {yield: 0.95, water_efficiency: 0.8, cost: 0.85}
//
// Crop entries patch the named fields only. Region, water and soil entries
// replace the whole factor and may add new keys.
type Overrides struct {
	Crops   map[string]CropOverride `yaml:"crops"`
	Regions map[string]RegionFactor `yaml:"regions"`
	Water   map[string]WaterFactor  `yaml:"water"`
	Soil    map[string]SoilFactor   `yaml:"soil"`
}

type CropOverride struct {
	Name            string             `yaml:"name"`
	Varieties       []string           `yaml:"varieties"`
	GrowthDays      *int               `yaml:"growth_duration_days"`
	WaterNeed       *float64           `yaml:"water_need"`
	RevenueFactor   *float64           `yaml:"revenue_factor"`
	SoilPreferences []SoilType         `yaml:"soil_preferences"`
	Activities      []ActivityTemplate `yaml:"activities"`
}

// LoadOverrides reads a YAML overrides file and applies it to the default
// catalog. An empty path returns the default catalog unchanged.
func LoadOverrides(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog overrides: %w", err)
	}
	var o Overrides
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("parse catalog overrides: %w", err)
	}
	return Default().WithOverrides(o)
}

// WithOverrides returns a copy of c with o applied. c is left untouched.
func (c *Catalog) WithOverrides(o Overrides) (*Catalog, error) {
	out := &Catalog{
		crops:   make(map[string]CropProfile, len(c.crops)),
		regions: make(map[Region]RegionFactor, len(c.regions)),
		water:   make(map[WaterSource]WaterFactor, len(c.water)),
		soil:    make(map[SoilType]SoilFactor, len(c.soil)),
	}
	for k, v := range c.crops {
		out.crops[k] = v.clone()
	}
	for k, v := range c.regions {
		out.regions[k] = v
	}
	for k, v := range c.water {
		out.water[k] = v
	}
	for k, v := range c.soil {
		out.soil[k] = v
	}

	for name, co := range o.Crops {
		slug := Slug(name)
		p, ok := out.crops[slug]
		if !ok {
			p = CropProfile{Name: name, Slug: slug, WaterNeed: NeutralCrop.WaterNeed, RevenueFactor: NeutralCrop.RevenueFactor}
		}
		if co.Name != "" {
			p.Name = co.Name
		}
		if co.Varieties != nil {
			p.Varieties = co.Varieties
		}
		if co.GrowthDays != nil {
			if *co.GrowthDays < 0 {
				return nil, fmt.Errorf("crop %q: growth_duration_days: %w", name, ErrInvalidInput)
			}
			p.GrowthDurationDays = *co.GrowthDays
		}
		if co.WaterNeed != nil {
			if !positive(*co.WaterNeed) {
				return nil, fmt.Errorf("crop %q: water_need: %w", name, ErrInvalidInput)
			}
			p.WaterNeed = *co.WaterNeed
		}
		if co.RevenueFactor != nil {
			if !positive(*co.RevenueFactor) {
				return nil, fmt.Errorf("crop %q: revenue_factor: %w", name, ErrInvalidInput)
			}
			p.RevenueFactor = *co.RevenueFactor
		}
		if co.SoilPreferences != nil {
			p.SoilPreferences = co.SoilPreferences
		}
		if co.Activities != nil {
			acts := make([]ActivityTemplate, len(co.Activities))
			for i, a := range co.Activities {
				if a.Type == "" {
					a.Type = ActivityOther
				}
				if !a.Type.Valid() || a.DayOffset < 0 {
					return nil, fmt.Errorf("crop %q: activity %d: %w", name, i, ErrInvalidInput)
				}
				acts[i] = a
			}
			p.Activities = acts
		}
		out.crops[slug] = p
	}
	for k, f := range o.Regions {
		if !positive(f.Yield) || !positive(f.WaterEfficiency) || !positive(f.Cost) {
			return nil, fmt.Errorf("region %q: %w", k, ErrInvalidInput)
		}
		out.regions[Region(Slug(k))] = f
	}
	for k, f := range o.Water {
		if !positive(f.Yield) || !positive(f.Cost) || !positive(f.Reliability) {
			return nil, fmt.Errorf("water source %q: %w", k, ErrInvalidInput)
		}
		out.water[WaterSource(Slug(k))] = f
	}
	for k, f := range o.Soil {
		if !positive(f.Yield) || !positive(f.WaterRetention) || !positive(f.Fertility) {
			return nil, fmt.Errorf("soil type %q: %w", k, ErrInvalidInput)
		}
		out.soil[SoilType(Slug(k))] = f
	}
	return out, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
