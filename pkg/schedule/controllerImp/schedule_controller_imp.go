package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/schedule/controller"
	"agriplan/pkg/schedule/service"
)

type ActivityCtrl struct{ svc service.ActivityService }

func New(svc service.ActivityService) controller.ActivityController { return &ActivityCtrl{svc} }

// List serves GET /activities. With ?crop_id= it returns the full calendar of
// one crop, completed entries included; otherwise the next ?limit= open
// activities across all crops.
func (h *ActivityCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	ctx := c.Request().Context()

	if cropID := c.QueryParam("crop_id"); cropID != "" {
		out, err := h.svc.ForCrop(ctx, uid, cropID)
		if err != nil {
			return apperr.JSON(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}
	out, err := h.svc.Upcoming(ctx, uid, limit)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ActivityCtrl) Patch(c echo.Context) error {
	uid := c.Get("uid").(string)
	var body struct {
		Completed *bool `json:"completed"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	// no "completed" field toggles
	out, err := h.svc.SetCompleted(c.Request().Context(), c.Param("id"), uid, body.Completed)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
