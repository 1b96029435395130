package controller

import "github.com/labstack/echo/v4"

type AssistantController interface {
	Message(c echo.Context) error
	Reset(c echo.Context) error
}
