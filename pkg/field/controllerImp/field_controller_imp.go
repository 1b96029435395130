package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/field/controller"
	"agriplan/pkg/field/service"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) controller.FieldController { return &FieldCtrl{svc} }

func fieldID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err == nil
}

func (h *FieldCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req service.FieldInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.CreateField(c.Request().Context(), uid, req)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	fs, err := h.svc.ListFields(c.Request().Context(), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, fs)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, ok := fieldID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	f, err := h.svc.GetFieldByID(c.Request().Context(), id, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, ok := fieldID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	if err := h.svc.DeleteField(c.Request().Context(), id, uid); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
