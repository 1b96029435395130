package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/crop/controller"
	"agriplan/pkg/crop/service"
	"agriplan/pkg/recommend"
)

type CropCtrl struct{ svc service.CropService }

func New(svc service.CropService) controller.CropController { return &CropCtrl{svc} }

type createReq struct {
	Crop         string  `json:"crop"`
	Variety      string  `json:"variety"`
	PlantingDate string  `json:"planting_date"`
	Status       string  `json:"status"`
	Field        string  `json:"field"`
	AreaHectares float64 `json:"area_hectares"`
	Notes        string  `json:"notes"`
}

type acceptReq struct {
	Crop         string                `json:"crop"`
	AreaHectares float64               `json:"area_hectares"`
	Reading      recommend.SoilReading `json:"reading"`
	PlantingDate string                `json:"planting_date"`
	Replace      bool                  `json:"replace"`
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func (h *CropCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.List(c.Request().Context(), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad json")
	}
	pd, ok := parseDay(req.PlantingDate)
	if !ok {
		return badRequest(c, "planting_date must be YYYY-MM-DD")
	}
	out, err := h.svc.AddCrop(c.Request().Context(), uid, service.AddRequest{
		Crop:         req.Crop,
		Variety:      req.Variety,
		PlantingDate: pd,
		Status:       entities.CropStatus(req.Status),
		Field:        req.Field,
		AreaHectares: req.AreaHectares,
		Notes:        req.Notes,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CropCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.Get(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Patch(c echo.Context) error {
	uid := c.Get("uid").(string)
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad json")
	}
	if err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), uid, entities.CropStatus(body.Status)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": body.Status})
}

func (h *CropCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CropCtrl) AcceptRecommended(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req acceptReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad json")
	}
	pd, ok := parseDay(req.PlantingDate)
	if !ok {
		return badRequest(c, "planting_date must be YYYY-MM-DD")
	}
	out, err := h.svc.AcceptRecommendation(c.Request().Context(), uid, service.AcceptRequest{
		Crop:         req.Crop,
		AreaHectares: req.AreaHectares,
		Reading:      req.Reading,
		PlantingDate: pd,
		Replace:      req.Replace,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CropCtrl) Summary(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.Summary(c.Request().Context(), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
