package controller

import "github.com/labstack/echo/v4"

type RecommendationController interface {
	Generate(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	PatchStatus(c echo.Context) error
	Delete(c echo.Context) error
}
