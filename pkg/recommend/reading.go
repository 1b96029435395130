package recommend

import (
	"fmt"
	"math"

	"agriplan/pkg/catalog"
)

// SoilReading is one set of soil and climate measurements entered by the
// farmer. N, P and K are in kg/ha, temperature in °C, humidity in %,
// rainfall in mm.
type SoilReading struct {
	N           float64 `json:"n"`
	P           float64 `json:"p"`
	K           float64 `json:"k"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

func (r SoilReading) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"n", r.N}, {"p", r.P}, {"k", r.K},
		{"temperature", r.Temperature}, {"humidity", r.Humidity},
		{"ph", r.PH}, {"rainfall", r.Rainfall},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s is not a finite number: %w", f.name, catalog.ErrInvalidInput)
		}
	}
	switch {
	case r.N < 0, r.P < 0, r.K < 0:
		return fmt.Errorf("nutrient values must not be negative: %w", catalog.ErrInvalidInput)
	case r.Humidity < 0 || r.Humidity > 100:
		return fmt.Errorf("humidity %.1f outside 0-100: %w", r.Humidity, catalog.ErrInvalidInput)
	case r.Rainfall < 0:
		return fmt.Errorf("rainfall must not be negative: %w", catalog.ErrInvalidInput)
	case r.PH < 0 || r.PH > 14:
		return fmt.Errorf("ph %.1f outside 0-14: %w", r.PH, catalog.ErrInvalidInput)
	}
	return nil
}
