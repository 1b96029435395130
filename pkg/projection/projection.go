// Package projection computes the five-year business plan for one crop on
// one plot: a base scenario plus upside and downside variants derived from
// the same intermediate figures.
package projection

import (
	"fmt"
	"math"

	"agriplan/pkg/catalog"
)

// Per-hectare base amounts in MAD.
const (
	baseInvestment   = 100000.0
	baseMaintenance  = 20000.0
	baseRevenue      = 45000.0
	baseLabor        = 15000.0
	baseWater        = 8000.0
	baseFertilizer   = 7000.0
	baseDepreciation = 5000.0

	CashFlowYears = 5
)

const (
	ScenarioBase     = "base"
	ScenarioUpside   = "upside"
	ScenarioDownside = "downside"
)

type Input struct {
	Region       string  `json:"region" query:"region"`
	WaterSource  string  `json:"water_source" query:"water_source"`
	SoilType     string  `json:"soil_type" query:"soil_type"`
	Crop         string  `json:"crop" query:"crop"`
	AreaHectares float64 `json:"area_hectares" query:"area_hectares"`
}

type Costs struct {
	Maintenance  float64 `json:"maintenance"`
	Water        float64 `json:"water"`
	Fertilizer   float64 `json:"fertilizer"`
	Labor        float64 `json:"labor"`
	Depreciation float64 `json:"depreciation"`
}

func (c Costs) Total() float64 {
	return c.Maintenance + c.Water + c.Fertilizer + c.Labor + c.Depreciation
}

type CashFlowPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type Scenario struct {
	Name              string          `json:"name"`
	InitialInvestment float64         `json:"initial_investment"`
	Costs             Costs           `json:"costs"`
	AnnualCosts       float64         `json:"annual_costs"`
	YearlyRevenue     float64         `json:"yearly_revenue"`
	Profit            float64         `json:"profit"`
	ROI               float64         `json:"roi"`
	BreakEvenYears    *float64        `json:"break_even_years"`
	CashFlow          []CashFlowPoint `json:"cash_flow"`
}

type Projection struct {
	Input                     Input    `json:"input"`
	SoilCompatibilityBonus    float64  `json:"soil_compatibility_bonus"`
	WaterEfficiencyMultiplier float64  `json:"water_efficiency_multiplier"`
	Base                      Scenario `json:"base"`
	Upside                    Scenario `json:"upside"`
	Downside                  Scenario `json:"downside"`
}

// Scenario selects one of the three scenarios by name.
func (p Projection) Scenario(name string) (Scenario, error) {
	switch name {
	case ScenarioBase, "":
		return p.Base, nil
	case ScenarioUpside:
		return p.Upside, nil
	case ScenarioDownside:
		return p.Downside, nil
	}
	return Scenario{}, fmt.Errorf("scenario %q: %w", name, catalog.ErrInvalidInput)
}

func (p Projection) Scenarios() []Scenario {
	return []Scenario{p.Base, p.Upside, p.Downside}
}

type Calculator struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Calculator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Calculator{cat: cat}
}

// Project runs the calculator against the built-in catalog.
func Project(in Input) (Projection, error) {
	return New(nil).Project(in)
}

// Project returns ErrInvalidInput when the area is not a positive finite
// number. Unknown region, water source, soil type or crop fall back to
// neutral factors.
func (c *Calculator) Project(in Input) (Projection, error) {
	area := in.AreaHectares
	if math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return Projection{}, fmt.Errorf("area %v: %w", area, catalog.ErrInvalidInput)
	}

	region, _ := c.cat.Region(in.Region)
	water, _ := c.cat.Water(in.WaterSource)
	soil, _ := c.cat.Soil(in.SoilType)
	crop := c.cat.CropOrNeutral(in.Crop)

	soilBonus := 0.8
	if crop.Prefers(catalog.SoilType(catalog.Slug(in.SoilType))) {
		soilBonus = 1.2
	}
	var waterMult float64
	switch catalog.WaterSource(catalog.Slug(in.WaterSource)) {
	case catalog.WaterIrrigation:
		waterMult = 1.0
	case catalog.WaterRain:
		waterMult = 1.0 - (crop.WaterNeed - 0.5)
	default:
		waterMult = 0.9
	}

	// area is applied last in every term so that scaling the plot scales
	// each figure exactly.
	investment := baseInvestment * region.Cost * area
	costs := Costs{
		Maintenance:  baseMaintenance * region.Cost * water.Cost * area,
		Water:        baseWater * water.Cost * crop.WaterNeed / soil.WaterRetention * area,
		Fertilizer:   baseFertilizer / soil.Fertility * area,
		Labor:        baseLabor * region.Cost * area,
		Depreciation: baseDepreciation * area,
	}
	revenue := baseRevenue * crop.RevenueFactor * region.Yield * water.Yield *
		soil.Yield * water.Reliability * soilBonus * waterMult * area

	upCosts := costs
	upCosts.Water *= 0.9
	upCosts.Fertilizer *= 0.9

	downCosts := Costs{
		Maintenance:  costs.Maintenance * 1.1,
		Water:        costs.Water * 1.2,
		Fertilizer:   costs.Fertilizer * 1.1,
		Labor:        costs.Labor * 1.05,
		Depreciation: costs.Depreciation,
	}

	return Projection{
		Input:                     in,
		SoilCompatibilityBonus:    soilBonus,
		WaterEfficiencyMultiplier: waterMult,
		Base:                      scenario(ScenarioBase, investment, costs, revenue),
		Upside:                    scenario(ScenarioUpside, investment*0.95, upCosts, revenue*1.2),
		Downside:                  scenario(ScenarioDownside, investment*1.1, downCosts, revenue*0.8),
	}, nil
}

func scenario(name string, investment float64, costs Costs, revenue float64) Scenario {
	annual := costs.Total()
	profit := revenue - annual
	s := Scenario{
		Name:              name,
		InitialInvestment: investment,
		Costs:             costs,
		AnnualCosts:       annual,
		YearlyRevenue:     revenue,
		Profit:            profit,
		ROI:               profit / investment * 100,
		CashFlow:          make([]CashFlowPoint, 0, CashFlowYears),
	}
	if profit > 0 {
		be := investment / profit
		s.BreakEvenYears = &be
	}
	for y := 1; y <= CashFlowYears; y++ {
		s.CashFlow = append(s.CashFlow, CashFlowPoint{Year: y, Value: -investment + profit*float64(y)})
	}
	return s
}
