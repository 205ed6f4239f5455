package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	authCtrl "agronome/pkg/auth/controller"
	climateCtrl "agronome/pkg/climatedata/controller"
	harvestCtrl "agronome/pkg/harvest/controller"
	"agronome/pkg/holding"
	holdingCtrl "agronome/pkg/holding/controller"
	inputCtrl "agronome/pkg/inputs/controller"
	irrigationCtrl "agronome/pkg/irrigation/controller"
	kbCtrl "agronome/pkg/kb/controller"
	"agronome/pkg/middleware"
	recCtrl "agronome/pkg/recommendation/controller"
	sensorCtrl "agronome/pkg/sensor/controller"
	soilCtrl "agronome/pkg/soil/controller"
)

type Controllers struct {
	Auth           authCtrl.AuthController
	Health         interface{ Health(echo.Context) error }
	Holding        holdingCtrl.HoldingController
	Soil           soilCtrl.SoilController
	Climate        climateCtrl.ClimateController
	Inputs         inputCtrl.InputController
	Harvest        harvestCtrl.HarvestController
	Recommendation recCtrl.RecommendationController
	Irrigation     irrigationCtrl.IrrigationController
	Sensor         sensorCtrl.SensorController
	KB             kbCtrl.KBController
}

// New registers every route. With enableAuth the user id must come from the
// gateway header; otherwise the dev cookie login is used.
func New(e *echo.Echo, c Controllers, holdings holding.Finder, enableAuth bool) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.Logger())

	e.GET("/health", c.Health.Health)

	api := e.Group("")
	if enableAuth {
		api.Use(middleware.RequireUser(true))
	} else {
		api.Use(middleware.DevLogin())
		api.GET("/devlogin", c.Auth.DevLogin)
	}
	api.GET("/whoami", c.Auth.WhoAmI)

	// KB endpoints
	api.POST("/kb/ingest", c.KB.IngestText)
	api.POST("/kb/ingest/url", c.KB.IngestURL)
	api.GET("/kb/search", c.KB.Search)

	api.POST("/holdings", c.Holding.Create)
	api.GET("/holdings", c.Holding.List)

	h := api.Group("/holdings/:id", holding.Guard(holdings))
	h.GET("", c.Holding.Get)
	h.POST("/soil-analyses", c.Soil.Create)
	h.GET("/soil-analyses", c.Soil.List)
	h.POST("/climate", c.Climate.Create)
	h.GET("/climate", c.Climate.List)
	h.POST("/inputs", c.Inputs.Create)
	h.GET("/inputs", c.Inputs.List)
	h.POST("/harvests", c.Harvest.Create)
	h.GET("/harvests", c.Harvest.List)
	h.POST("/recommendations/generate", c.Recommendation.Generate)
	h.GET("/recommendations", c.Recommendation.List)
	h.POST("/irrigation-advice", c.Irrigation.Advise)

	api.POST("/harvests/import", c.Harvest.Import)
	api.POST("/harvests/import/xlsx", c.Harvest.ImportXLSX)
	api.GET("/harvests/statistics", c.Harvest.Statistics)
	api.GET("/harvests/forecast", c.Harvest.Forecast)

	api.GET("/recommendations/:rid", c.Recommendation.Get)
	api.PATCH("/recommendations/:rid/status", c.Recommendation.PatchStatus)
	api.DELETE("/recommendations/:rid", c.Recommendation.Delete)

	api.POST("/sensors", c.Sensor.Register)
	api.GET("/sensors", c.Sensor.List)
	api.POST("/sensors/data", c.Sensor.Ingest)
	api.GET("/sensors/data", c.Sensor.Readings)
	return e
}
