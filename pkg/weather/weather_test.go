package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func fakeOWM(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "k", r.URL.Query().Get("appid"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Current(t *testing.T) {
	srv := fakeOWM(t, http.StatusOK, `{
		"dt": 1718445600,
		"main": {"temp": 31.2, "temp_min": 29, "temp_max": 36.5, "humidity": 38, "pressure": 1009},
		"weather": [{"description": "few clouds", "icon": "02d"}],
		"wind": {"speed": 3.1, "deg": 200},
		"rain": {"3h": 1.5},
		"clouds": {"all": 20},
		"name": "Lome",
		"sys": {"country": "TG"}
	}`)
	c := NewClient(srv.URL, "k", 100)

	cur, err := c.Current(context.Background(), 6.13, 1.22)
	require.NoError(t, err)
	assert.Equal(t, 31.2, *cur.TemperatureC)
	assert.Equal(t, 36.5, *cur.TempMaxC)
	assert.Equal(t, 1.5, cur.RainfallMM, "3h rain is used when 1h is absent")
	assert.Equal(t, "Lome", cur.City)
	assert.Equal(t, "few clouds", cur.Description)

	snap := cur.Snapshot()
	assert.Equal(t, 36.5, *snap.TemperatureMaxC)
	assert.Equal(t, 38.0, *snap.HumidityPct)
	assert.Equal(t, 1.5, *snap.RainfallMM)
}

func TestClient_CurrentWithoutRain(t *testing.T) {
	srv := fakeOWM(t, http.StatusOK, `{"main": {"temp": 25, "humidity": 80}}`)
	cur, err := NewClient(srv.URL, "k", 100).Current(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cur.RainfallMM)
	assert.Nil(t, cur.TempMaxC)
	assert.False(t, cur.At.IsZero())
}

func TestClient_Forecast(t *testing.T) {
	srv := fakeOWM(t, http.StatusOK, `{"list": [
		{"dt": 1718445600, "main": {"temp": 30}, "rain": {"3h": 0.5}},
		{"dt": 1718456400, "main": {"temp": 28}},
		{"dt": 1718467200, "main": {"temp": 26}, "rain": {"3h": 2}}
	]}`)
	list, err := NewClient(srv.URL, "k", 100).Forecast(context.Background(), 6.13, 1.22)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, time.Unix(1718445600, 0).UTC(), list[0].At)

	pts := ForecastPoints(list)
	require.Len(t, pts, 3)
	assert.Equal(t, 0.5, *pts[0].RainfallMM)
	assert.Equal(t, 0.0, *pts[1].RainfallMM)
	assert.Equal(t, 2.0, *pts[2].RainfallMM)
}

func TestClient_Errors(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", "", 1).Current(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewClient(fakeOWM(t, http.StatusUnauthorized, `{"message":"Invalid API key"}`).URL, "k", 100).Current(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = NewClient(fakeOWM(t, http.StatusNotFound, `{}`).URL, "k", 100).Forecast(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewClient(fakeOWM(t, http.StatusTooManyRequests, `{"message":"rate limit"}`).URL, "k", 100).Current(context.Background(), 0, 0)
	assert.EqualError(t, err, "weather api: rate limit")

	_, err = NewClient(fakeOWM(t, http.StatusBadGateway, ``).URL, "k", 100).Current(context.Background(), 0, 0)
	assert.EqualError(t, err, "weather api: HTTP 502")
}

func TestClient_CancelledContext(t *testing.T) {
	srv := fakeOWM(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, "k", 100).Current(ctx, 0, 0)
	assert.Error(t, err)
}

func TestSnapshot_Nil(t *testing.T) {
	var c *Conditions
	assert.Nil(t, c.Snapshot())
}

func TestStatic(t *testing.T) {
	s := &Static{Err: errors.New("down")}
	_, err := s.Current(context.Background(), 0, 0)
	assert.EqualError(t, err, "down")
}

func TestGroupByDay(t *testing.T) {
	at := func(d, h int) time.Time { return time.Date(2025, 6, d, h, 0, 0, 0, time.UTC) }
	pts := []Conditions{
		{At: at(15, 15), TemperatureC: fp(32), TempMinC: fp(30), TempMaxC: fp(33), HumidityPct: fp(50), RainfallMM: 1},
		{At: at(15, 21), TemperatureC: fp(27), TempMinC: fp(26), TempMaxC: fp(28), HumidityPct: fp(70), RainfallMM: 0.5},
		{At: at(16, 0), TemperatureC: fp(25), HumidityPct: fp(85)},
		{At: at(16, 9), TemperatureC: fp(28), HumidityPct: fp(75), RainfallMM: 2},
		{At: at(16, 12), TemperatureC: fp(33), HumidityPct: fp(55), Description: "sun"},
		{TemperatureC: fp(99)}, // undated, skipped
	}
	days := GroupByDay(pts)
	require.Len(t, days, 2)

	assert.Equal(t, "2025-06-15", days[0].Date)
	assert.Equal(t, 26.0, *days[0].TempMinC)
	assert.Equal(t, 33.0, *days[0].TempMaxC)
	assert.Equal(t, 1.5, days[0].RainfallMM)
	// no bucket between 10h and 14h: middle bucket
	assert.Equal(t, 70.0, *days[0].HumidityPct)

	assert.Equal(t, "2025-06-16", days[1].Date)
	assert.Equal(t, 25.0, *days[1].TempMinC, "falls back to temperatures when min is absent")
	assert.Equal(t, 33.0, *days[1].TempMaxC)
	assert.Equal(t, 55.0, *days[1].HumidityPct)
	assert.Equal(t, "sun", days[1].Description)
	assert.Equal(t, 2.0, days[1].RainfallMM)

	assert.Empty(t, GroupByDay(nil))
}
