package service

import (
	"context"

	"agronome/entities"
	"agronome/pkg/agronomy"
	"agronome/pkg/weather"
)

// Request is the posted body. Current is optional; when it is absent the
// service fetches weather for the holding.
type Request struct {
	Current        *agronomy.WeatherSnapshot `json:"current"`
	Forecast       []agronomy.ForecastPoint  `json:"forecast"`
	LastRainfallMM *float64                  `json:"last_rainfall_mm"`
	CropType       string                    `json:"crop_type"`
}

type Result struct {
	HoldingID    uint                        `json:"holding_id"`
	CropType     string                      `json:"crop_type"`
	Advice       []agronomy.IrrigationAdvice `json:"advice"`
	Weather      *weather.Conditions         `json:"weather,omitempty"`
	Daily        []weather.Daily             `json:"daily_forecast,omitempty"`
	WeatherError string                      `json:"weather_error,omitempty"`
}

type IrrigationService interface {
	Advise(ctx context.Context, h *entities.Holding, req Request) Result
}
