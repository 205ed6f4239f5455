package serviceImp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agronome/entities"
	"agronome/pkg/agronomy"
	"agronome/pkg/irrigation/service"
	"agronome/pkg/irrigation/serviceImp"
	"agronome/pkg/weather"
)

func f(v float64) *float64 { return &v }

func kinds(as []agronomy.IrrigationAdvice) []agronomy.AdviceKind {
	out := make([]agronomy.AdviceKind, len(as))
	for i, a := range as {
		out[i] = a.Kind
	}
	return out
}

func located() *entities.Holding {
	return &entities.Holding{HoldingID: 4, MainCrop: "rice", Latitude: f(6.13), Longitude: f(1.22)}
}

func TestAdviseWithPostedWeather(t *testing.T) {
	svc := serviceImp.NewIrrigationService(agronomy.NewAdvisor(agronomy.Default()), nil)
	res := svc.Advise(context.Background(), located(), service.Request{
		Current: &agronomy.WeatherSnapshot{TemperatureC: f(28), HumidityPct: f(60), RainfallMM: f(0)},
	})
	assert.Equal(t, "rice", res.CropType)
	assert.Empty(t, res.WeatherError)
	assert.Nil(t, res.Weather)
	assert.Equal(t, []agronomy.AdviceKind{agronomy.AdviceUrgent}, kinds(res.Advice))
}

func TestAdviseFetchesWeather(t *testing.T) {
	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	next := make([]weather.Conditions, 16)
	for i := range next {
		next[i] = weather.Conditions{At: start.Add(time.Duration(i*3) * time.Hour), TemperatureC: f(30), HumidityPct: f(50)}
	}
	wx := &weather.Static{
		Now:  &weather.Conditions{TemperatureC: f(37), HumidityPct: f(30)},
		Next: next,
	}
	svc := serviceImp.NewIrrigationService(agronomy.NewAdvisor(agronomy.Default()), wx)
	res := svc.Advise(context.Background(), located(), service.Request{})

	require.NotNil(t, res.Weather)
	assert.Empty(t, res.WeatherError)
	assert.Len(t, res.Daily, 2)
	assert.Equal(t, []agronomy.AdviceKind{
		agronomy.AdviceUrgent, agronomy.AdviceCooling, agronomy.AdviceDryAir, agronomy.AdvicePlanning48h,
	}, kinds(res.Advice))
}

func TestAdviseWithoutWeather(t *testing.T) {
	advisor := agronomy.NewAdvisor(agronomy.Default())

	res := serviceImp.NewIrrigationService(advisor, &weather.Static{Err: weather.ErrUnauthorized}).
		Advise(context.Background(), located(), service.Request{CropType: "Maize"})
	assert.Equal(t, "maize", res.CropType)
	assert.Equal(t, weather.ErrUnauthorized.Error(), res.WeatherError)
	assert.Equal(t, []agronomy.AdviceKind{agronomy.AdviceInformational}, kinds(res.Advice))

	res = serviceImp.NewIrrigationService(advisor, nil).
		Advise(context.Background(), located(), service.Request{})
	assert.Equal(t, weather.ErrNoAPIKey.Error(), res.WeatherError)
	assert.Equal(t, []agronomy.AdviceKind{agronomy.AdviceInformational}, kinds(res.Advice))

	res = serviceImp.NewIrrigationService(advisor, &weather.Static{}).
		Advise(context.Background(), &entities.Holding{MainCrop: "yam"}, service.Request{})
	assert.Equal(t, "holding has no coordinates", res.WeatherError)
	assert.Len(t, res.Advice, 1)
}
