package controller

import "github.com/labstack/echo/v4"

type IrrigationController interface {
	Advise(c echo.Context) error
}
