package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/assistant/controller"
	"agriplan/pkg/assistant/service"
)

type AssistantCtrl struct{ svc service.AssistantService }

func New(svc service.AssistantService) controller.AssistantController {
	return &AssistantCtrl{svc: svc}
}

func (h *AssistantCtrl) Message(c echo.Context) error {
	uid := c.Get("uid").(string)
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	r, err := h.svc.Reply(c.Request().Context(), uid, body.Message)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"reply":        r,
		"conversation": h.svc.Conversation(uid),
	})
}

func (h *AssistantCtrl) Reset(c echo.Context) error {
	h.svc.Reset(c.Get("uid").(string))
	return c.NoContent(http.StatusNoContent)
}
