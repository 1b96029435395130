package controllerImp

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/plan/controller"
	"agriplan/pkg/plan/service"
	"agriplan/pkg/projection"
)

type PlanCtrl struct{ svc service.PlanService }

type planReq struct {
	projection.Input
	FieldID uint `json:"field_id" query:"field_id"`
}

// input resolves the optional field reference. A field that does not belong
// to the user is a 404.
func (h *PlanCtrl) input(c echo.Context, req planReq) (projection.Input, error) {
	if req.FieldID == 0 {
		return req.Input, nil
	}
	return h.svc.FromField(c.Request().Context(), c.Get("uid").(string), req.FieldID, req.Input)
}

func NewPlanCtrl(svc service.PlanService) controller.PlanController { return &PlanCtrl{svc: svc} }

// fail answers calculator input errors with 422; the request itself was well
// formed.
func fail(c echo.Context, err error) error {
	if errors.Is(err, apperr.ErrInvalidInput) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return apperr.JSON(c, err)
}

func (h *PlanCtrl) Project(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req planReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in, err := h.input(c, req)
	if err != nil {
		return apperr.JSON(c, err)
	}
	r, err := h.svc.Project(c.Request().Context(), uid, in)
	if err != nil {
		return fail(c, err)
	}
	if name := c.QueryParam("scenario"); name != "" {
		s, err := r.Scenario(name)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, s)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *PlanCtrl) Export(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req planReq
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad query"})
	}
	in, err := h.input(c, req)
	if err != nil {
		return apperr.JSON(c, err)
	}
	var buf bytes.Buffer
	ct, name, err := h.svc.Export(c.Request().Context(), uid, in, c.QueryParam("format"), &buf)
	if err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, ct, buf.Bytes())
}

func (h *PlanCtrl) Save(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req planReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in, err := h.input(c, req)
	if err != nil {
		return apperr.JSON(c, err)
	}
	p, err := h.svc.Save(c.Request().Context(), uid, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlanCtrl) History(c echo.Context) error {
	uid := c.Get("uid").(string)
	ps, err := h.svc.History(c.Request().Context(), uid, c.QueryParam("crop"))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}

// Latest serves GET /business-plans/latest?crop=.
func (h *PlanCtrl) Latest(c echo.Context) error {
	uid := c.Get("uid").(string)
	p, err := h.svc.Latest(c.Request().Context(), uid, c.QueryParam("crop"))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
