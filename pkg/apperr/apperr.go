// Package apperr holds the planner's sentinel errors and their HTTP mapping.
package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agriplan/pkg/catalog"
	"agriplan/pkg/logger"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrReplaceNotConfirmed = errors.New("existing crops would be replaced; resubmit with replace=true")

	ErrInvalidInput = catalog.ErrInvalidInput
	ErrUnknownCrop  = catalog.ErrUnknownCrop
)

func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrReplaceNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownCrop):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// JSON writes err as {"error": "..."} with the mapped status. Internal
// errors are logged and answered with a generic message.
func JSON(c echo.Context, err error) error {
	status := Status(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(status, map[string]string{"error": "internal error"})
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
