package serviceImp

import (
	"context"
	"log"
	"strings"

	"agronome/entities"
	"agronome/pkg/agronomy"
	"agronome/pkg/irrigation/service"
	"agronome/pkg/weather"
)

type irrigationSvc struct {
	advisor *agronomy.Advisor
	wx      weather.Provider // nil when no API key is configured
}

func NewIrrigationService(advisor *agronomy.Advisor, wx weather.Provider) service.IrrigationService {
	return &irrigationSvc{advisor: advisor, wx: wx}
}

func (s *irrigationSvc) Advise(ctx context.Context, h *entities.Holding, req service.Request) service.Result {
	crop := strings.ToLower(strings.TrimSpace(req.CropType))
	if crop == "" {
		crop = h.MainCrop
	}
	res := service.Result{HoldingID: h.HoldingID, CropType: crop}

	in := agronomy.IrrigationRequest{
		Current:        req.Current,
		Forecast:       req.Forecast,
		LastRainfallMM: req.LastRainfallMM,
		CropType:       crop,
	}
	if in.Current == nil {
		switch {
		case s.wx == nil:
			res.WeatherError = weather.ErrNoAPIKey.Error()
		case !h.HasCoordinates():
			res.WeatherError = "holding has no coordinates"
		default:
			if err := s.fetch(ctx, h, &in, &res); err != nil {
				log.Printf("[weather] holding=%d: %v", h.HoldingID, err)
				res.WeatherError = err.Error()
				in.Current, in.Forecast = nil, nil
			}
		}
	}

	res.Advice = s.advisor.Advise(in)
	return res
}

func (s *irrigationSvc) fetch(ctx context.Context, h *entities.Holding, in *agronomy.IrrigationRequest, res *service.Result) error {
	lat, lon := *h.Latitude, *h.Longitude
	cur, err := s.wx.Current(ctx, lat, lon)
	if err != nil {
		return err
	}
	fc, err := s.wx.Forecast(ctx, lat, lon)
	if err != nil {
		return err
	}
	in.Current = cur.Snapshot()
	if len(in.Forecast) == 0 {
		in.Forecast = weather.ForecastPoints(fc)
	}
	res.Weather = cur
	res.Daily = weather.GroupByDay(fc)
	return nil
}
