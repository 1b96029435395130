package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/profile/service"
)

type ProfileCtrl struct{ svc service.ProfileService }

func New(svc service.ProfileService) *ProfileCtrl { return &ProfileCtrl{svc} }

func (h *ProfileCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	p, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileCtrl) Put(c echo.Context) error {
	uid := c.Get("uid").(string)
	var body service.UserProfile
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.svc.Put(c.Request().Context(), uid, body)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.svc.Reset(c.Request().Context(), uid); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
