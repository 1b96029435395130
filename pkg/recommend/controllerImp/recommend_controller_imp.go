package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/recommend"
)

type RecommendCtrl struct{ rec recommend.Recommender }

func New(rec recommend.Recommender) *RecommendCtrl { return &RecommendCtrl{rec: rec} }

// Recommend runs the configured recommender, or a named local ruleset when
// ?ruleset is given.
func (h *RecommendCtrl) Recommend(c echo.Context) error {
	var r recommend.SoilReading
	if err := c.Bind(&r); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := r.Validate(); err != nil {
		return apperr.JSON(c, err)
	}
	rec := h.rec
	if name := c.QueryParam("ruleset"); name != "" {
		local, err := recommend.NewLocal(name)
		if err != nil {
			return apperr.JSON(c, err)
		}
		rec = local
	}
	return c.JSON(http.StatusOK, rec.Recommend(c.Request().Context(), r))
}

func (h *RecommendCtrl) Rulesets(c echo.Context) error {
	return c.JSON(http.StatusOK, recommend.Names())
}
