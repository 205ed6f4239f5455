// pkg/weather/provider.go

package weather

import (
	"context"
	"errors"
	"time"

	"agronome/pkg/agronomy"
)

var (
	ErrNoAPIKey     = errors.New("weather: api key not configured")
	ErrUnauthorized = errors.New("weather: invalid api key")
	ErrNotFound     = errors.New("weather: location not found")
)

type Provider interface {
	Current(ctx context.Context, lat, lon float64) (*Conditions, error)
	// Forecast returns chronological 3-hour buckets.
	Forecast(ctx context.Context, lat, lon float64) ([]Conditions, error)
}

// Conditions is one observation or forecast bucket, metric units.
type Conditions struct {
	At           time.Time `json:"date"`
	TemperatureC *float64  `json:"temperature"`
	TempMinC     *float64  `json:"temperature_min"`
	TempMaxC     *float64  `json:"temperature_max"`
	HumidityPct  *float64  `json:"humidity"`
	PressureHPa  *float64  `json:"pressure"`
	WindSpeedMS  *float64  `json:"wind_speed"`
	WindDeg      *float64  `json:"wind_deg"`
	CloudsPct    *float64  `json:"clouds"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	RainfallMM   float64   `json:"rainfall"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
}

// Snapshot maps current conditions to the advisor input.
func (c *Conditions) Snapshot() *agronomy.WeatherSnapshot {
	if c == nil {
		return nil
	}
	rain := c.RainfallMM
	return &agronomy.WeatherSnapshot{
		TemperatureC:    c.TemperatureC,
		TemperatureMaxC: c.TempMaxC,
		HumidityPct:     c.HumidityPct,
		RainfallMM:      &rain,
	}
}

func ForecastPoints(list []Conditions) []agronomy.ForecastPoint {
	out := make([]agronomy.ForecastPoint, len(list))
	for i, c := range list {
		rain := c.RainfallMM
		out[i] = agronomy.ForecastPoint{At: c.At, RainfallMM: &rain}
	}
	return out
}

// Static serves fixed data; used when no API key is configured and in tests.
type Static struct {
	Now  *Conditions
	Next []Conditions
	Err  error
}

func (s *Static) Current(ctx context.Context, lat, lon float64) (*Conditions, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Now, nil
}

func (s *Static) Forecast(ctx context.Context, lat, lon float64) ([]Conditions, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Next, nil
}
