// Package catalog holds the constant reference tables used by the calculators:
// crop profiles and the region, water source and soil factor tables.
//
// The tables are built once when the process starts. A Catalog is never
// mutated after construction; WithOverrides returns a new one.
package catalog

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidInput is returned for malformed numeric input or an
	// unrecognized enum value where no neutral fallback applies.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownCrop is returned when a crop name is absent from the table.
	ErrUnknownCrop = errors.New("unknown crop")
)

type (
	Region      string
	WaterSource string
	SoilType    string
)

const (
	WaterIrrigation WaterSource = "irrigation"
	WaterRain       WaterSource = "rainwater"
	WaterWell       WaterSource = "well"
	WaterRiver      WaterSource = "river"

	SoilClay   SoilType = "clay"
	SoilSandy  SoilType = "sandy"
	SoilLoamy  SoilType = "loamy"
	SoilChalky SoilType = "chalky"
	SoilPeaty  SoilType = "peaty"
)

type ActivityType string

const (
	ActivityWatering    ActivityType = "Watering"
	ActivityFertilizing ActivityType = "Fertilizing"
	ActivityPesticide   ActivityType = "Pesticide"
	ActivityPruning     ActivityType = "Pruning"
	ActivityHarvesting  ActivityType = "Harvesting"
	ActivityPlanting    ActivityType = "Planting"
	ActivityOther       ActivityType = "Other"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityWatering, ActivityFertilizing, ActivityPesticide, ActivityPruning,
		ActivityHarvesting, ActivityPlanting, ActivityOther:
		return true
	}
	return false
}

type ActivityTemplate struct {
	Type      ActivityType `json:"type" yaml:"type"`
	DayOffset int          `json:"day_offset" yaml:"day_offset"`
	Notes     string       `json:"notes" yaml:"notes"`
}

// CropProfile is the static reference entry for one supported crop.
// GrowthDurationDays is zero for crops that only carry financial factors;
// those cannot be planned.
type CropProfile struct {
	Name                    string             `json:"name"`
	Slug                    string             `json:"slug"`
	Varieties               []string           `json:"varieties"`
	GrowthDurationDays      int                `json:"growth_duration_days"`
	WateringIntervalDays    int                `json:"watering_interval_days"`
	FertilizingIntervalDays int                `json:"fertilizing_interval_days"`
	Activities              []ActivityTemplate `json:"activities"`
	WaterNeed               float64            `json:"water_need"`
	SoilPreferences         []SoilType         `json:"soil_preferences"`
	RevenueFactor           float64            `json:"revenue_factor"`
}

func (p CropProfile) Plannable() bool { return p.GrowthDurationDays > 0 }

func (p CropProfile) Prefers(s SoilType) bool {
	for _, pref := range p.SoilPreferences {
		if pref == s {
			return true
		}
	}
	return false
}

// DefaultVariety is the variety used when a crop is planned from a recommendation.
func (p CropProfile) DefaultVariety() string {
	if len(p.Varieties) > 0 && p.Varieties[0] != "" {
		return p.Varieties[0]
	}
	return "Standard"
}

func (p CropProfile) clone() CropProfile {
	p.Varieties = append([]string(nil), p.Varieties...)
	p.Activities = append([]ActivityTemplate(nil), p.Activities...)
	p.SoilPreferences = append([]SoilType(nil), p.SoilPreferences...)
	return p
}

type RegionFactor struct {
	Yield           float64 `json:"yield" yaml:"yield"`
	WaterEfficiency float64 `json:"water_efficiency" yaml:"water_efficiency"`
	Cost            float64 `json:"cost" yaml:"cost"`
}

type WaterFactor struct {
	Yield       float64 `json:"yield" yaml:"yield"`
	Cost        float64 `json:"cost" yaml:"cost"`
	Reliability float64 `json:"reliability" yaml:"reliability"`
}

type SoilFactor struct {
	Yield          float64 `json:"yield" yaml:"yield"`
	WaterRetention float64 `json:"water_retention" yaml:"water_retention"`
	Fertility      float64 `json:"fertility" yaml:"fertility"`
}

// Neutral factors used when a key is not in its table.
var (
	NeutralRegion = RegionFactor{Yield: 1.0, WaterEfficiency: 1.0, Cost: 1.0}
	NeutralWater  = WaterFactor{Yield: 1.0, Cost: 1.0, Reliability: 1.0}
	NeutralSoil   = SoilFactor{Yield: 1.0, WaterRetention: 1.0, Fertility: 1.0}
	NeutralCrop   = CropProfile{WaterNeed: 1.0, RevenueFactor: 1.0}
)

type Catalog struct {
	crops   map[string]CropProfile
	regions map[Region]RegionFactor
	water   map[WaterSource]WaterFactor
	soil    map[SoilType]SoilFactor
}

var defaultCatalog = build()

// Default returns the built-in catalog.
func Default() *Catalog { return defaultCatalog }

// Slug normalizes a display name or key: "Sugar Beet" -> "sugar-beet".
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	if a, ok := aliases[s]; ok {
		return a
	}
	return s
}

// Crop looks a crop up by display name or slug.
func (c *Catalog) Crop(name string) (CropProfile, bool) {
	p, ok := c.crops[Slug(name)]
	if !ok {
		return CropProfile{}, false
	}
	return p.clone(), true
}

// CropOrNeutral mirrors the calculator's fallback: unknown crops get neutral
// financial factors.
func (c *Catalog) CropOrNeutral(name string) CropProfile {
	if p, ok := c.Crop(name); ok {
		return p
	}
	n := NeutralCrop
	n.Name = name
	return n
}

func (c *Catalog) Crops() []CropProfile {
	out := make([]CropProfile, 0, len(c.crops))
	for _, p := range c.crops {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func (c *Catalog) Region(r string) (RegionFactor, bool) {
	f, ok := c.regions[Region(Slug(r))]
	if !ok {
		return NeutralRegion, false
	}
	return f, true
}

func (c *Catalog) Water(w string) (WaterFactor, bool) {
	f, ok := c.water[WaterSource(Slug(w))]
	if !ok {
		return NeutralWater, false
	}
	return f, true
}

func (c *Catalog) Soil(s string) (SoilFactor, bool) {
	f, ok := c.soil[SoilType(Slug(s))]
	if !ok {
		return NeutralSoil, false
	}
	return f, true
}

func (c *Catalog) Regions() []Region           { return sortedKeys(c.regions) }
func (c *Catalog) WaterSources() []WaterSource { return sortedKeys(c.water) }
func (c *Catalog) SoilTypes() []SoilType       { return sortedKeys(c.soil) }

func sortedKeys[K ~string, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
