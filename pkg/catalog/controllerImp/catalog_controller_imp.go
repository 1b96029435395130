package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/catalog"
	"agriplan/pkg/projection"
)

type CatalogCtrl struct {
	cat  *catalog.Catalog
	calc *projection.Calculator
}

func New(cat *catalog.Catalog) *CatalogCtrl {
	if cat == nil {
		cat = catalog.Default()
	}
	return &CatalogCtrl{cat: cat, calc: projection.New(cat)}
}

func (h *CatalogCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"crops":         h.cat.Crops(),
		"regions":       h.cat.Regions(),
		"water_sources": h.cat.WaterSources(),
		"soil_types":    h.cat.SoilTypes(),
	})
}

func (h *CatalogCtrl) Crop(c echo.Context) error {
	p, ok := h.cat.Crop(c.Param("name"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown crop"})
	}
	return c.JSON(http.StatusOK, p)
}

// Compatibility reports how well a crop suits a soil type and water source.
func (h *CatalogCtrl) Compatibility(c echo.Context) error {
	crop := c.QueryParam("crop")
	if _, ok := h.cat.Crop(crop); !ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "unknown crop"})
	}
	return c.JSON(http.StatusOK, h.calc.Advise(projection.Input{
		Crop:        crop,
		SoilType:    c.QueryParam("soil_type"),
		WaterSource: c.QueryParam("water_source"),
	}))
}
