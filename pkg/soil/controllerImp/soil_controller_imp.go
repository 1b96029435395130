package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/recommend"
	"agriplan/pkg/soil/controller"
	"agriplan/pkg/soil/service"
)

type SoilCtrl struct{ svc service.SoilService }

func New(svc service.SoilService) controller.SoilController { return &SoilCtrl{svc} }

type sampleReq struct {
	recommend.SoilReading
	Date string `json:"date"`
	Note string `json:"note"`
}

func (h *SoilCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req sampleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	var taken time.Time
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		}
		taken = d
	}
	m, err := h.svc.Save(c.Request().Context(), uid, req.SoilReading, taken, req.Note)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *SoilCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.Recent(c.Request().Context(), uid, 60)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
