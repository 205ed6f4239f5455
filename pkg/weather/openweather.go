// pkg/weather/openweather.go

package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client talks to the OpenWeatherMap 2.5 API. Every call waits on the limiter.
type Client struct {
	baseURL string
	key     string
	lang    string
	httpc   *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL, key string, rps float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		lang:    "en",
		httpc:   &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

type owmItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     *float64 `json:"temp"`
		TempMin  *float64 `json:"temp_min"`
		TempMax  *float64 `json:"temp_max"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		H1 float64 `json:"1h"`
		H3 float64 `json:"3h"`
	} `json:"rain"`
	Clouds struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

func (it owmItem) conditions(lat, lon float64, rain float64) Conditions {
	c := Conditions{
		TemperatureC: it.Main.Temp,
		TempMinC:     it.Main.TempMin,
		TempMaxC:     it.Main.TempMax,
		HumidityPct:  it.Main.Humidity,
		PressureHPa:  it.Main.Pressure,
		WindSpeedMS:  it.Wind.Speed,
		WindDeg:      it.Wind.Deg,
		CloudsPct:    it.Clouds.All,
		RainfallMM:   rain,
		Latitude:     lat,
		Longitude:    lon,
		City:         it.Name,
		Country:      it.Sys.Country,
	}
	if it.Dt > 0 {
		c.At = time.Unix(it.Dt, 0).UTC()
	}
	if len(it.Weather) > 0 {
		c.Description = it.Weather[0].Description
		c.Icon = it.Weather[0].Icon
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, lat, lon float64, out any) error {
	if c.key == "" {
		return ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.key)
	q.Set("units", "metric")
	q.Set("lang", c.lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var e struct {
			Message string `json:"message"`
		}
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(b, &e) != nil || e.Message == "" {
			e.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("weather api: %s", e.Message)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("weather api: unexpected response: %w", err)
	}
	return nil
}

func (c *Client) Current(ctx context.Context, lat, lon float64) (*Conditions, error) {
	var it owmItem
	if err := c.get(ctx, "/weather", lat, lon, &it); err != nil {
		return nil, err
	}
	rain := it.Rain.H1
	if rain == 0 {
		rain = it.Rain.H3
	}
	cond := it.conditions(lat, lon, rain)
	if cond.At.IsZero() {
		cond.At = time.Now().UTC()
	}
	return &cond, nil
}

func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]Conditions, error) {
	var body struct {
		List []owmItem `json:"list"`
	}
	if err := c.get(ctx, "/forecast", lat, lon, &body); err != nil {
		return nil, err
	}
	out := make([]Conditions, 0, len(body.List))
	for _, it := range body.List {
		out = append(out, it.conditions(lat, lon, it.Rain.H3))
	}
	return out, nil
}
