package controller

import "github.com/labstack/echo/v4"

type HarvestController interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Import(c echo.Context) error
	ImportXLSX(c echo.Context) error
	Statistics(c echo.Context) error
	Forecast(c echo.Context) error
}
