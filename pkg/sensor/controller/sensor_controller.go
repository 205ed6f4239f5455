package controller

import "github.com/labstack/echo/v4"

type SensorController interface {
	Register(c echo.Context) error
	List(c echo.Context) error
	Ingest(c echo.Context) error
	Readings(c echo.Context) error
}
