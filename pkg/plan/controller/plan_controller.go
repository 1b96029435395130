package controller

import "github.com/labstack/echo/v4"

type PlanController interface {
	Project(c echo.Context) error
	Export(c echo.Context) error
	Save(c echo.Context) error
	History(c echo.Context) error
	Latest(c echo.Context) error
}
