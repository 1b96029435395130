package projection

import (
	"fmt"

	"agriplan/pkg/catalog"
)

type Compatibility string

const (
	Compatible   Compatibility = "compatible"
	Moderate     Compatibility = "moderate"
	Incompatible Compatibility = "incompatible"
)

// waterNeed ceilings under which a crop is fully served by each source.
var waterCeilings = map[catalog.WaterSource]float64{
	catalog.WaterRain:  0.7,
	catalog.WaterWell:  0.85,
	catalog.WaterRiver: 0.9,
}

func SoilCompatibility(crop catalog.CropProfile, soil string) Compatibility {
	if crop.Prefers(catalog.SoilType(catalog.Slug(soil))) {
		return Compatible
	}
	return Incompatible
}

func WaterCompatibility(crop catalog.CropProfile, water string) Compatibility {
	ws := catalog.WaterSource(catalog.Slug(water))
	if ws == catalog.WaterIrrigation {
		return Compatible
	}
	if ceiling, ok := waterCeilings[ws]; ok && crop.WaterNeed <= ceiling {
		return Compatible
	}
	if crop.WaterNeed > 0.9 {
		return Incompatible
	}
	return Moderate
}

type Advice struct {
	Soil    Compatibility `json:"soil"`
	Water   Compatibility `json:"water"`
	Message string        `json:"message"`
}

// Advise is the one-line suitability note shown next to a projection.
func (c *Calculator) Advise(in Input) Advice {
	crop := c.cat.CropOrNeutral(in.Crop)
	a := Advice{
		Soil:  SoilCompatibility(crop, in.SoilType),
		Water: WaterCompatibility(crop, in.WaterSource),
	}
	switch {
	case a.Soil == Compatible && a.Water == Compatible:
		a.Message = fmt.Sprintf("%s is well-suited to your selected soil type and water source.", crop.Name)
	case a.Soil == Incompatible:
		a.Message = fmt.Sprintf("Consider switching to crops better suited for %s soil, as %s may underperform.", in.SoilType, crop.Name)
	case a.Water == Incompatible:
		a.Message = fmt.Sprintf("%s has high water requirements that may be challenging with your selected water source.", crop.Name)
	default:
		a.Message = fmt.Sprintf("Monitor %s growth carefully with your current soil and water conditions.", crop.Name)
	}
	return a
}
