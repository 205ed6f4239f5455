package agronomy

import (
	"fmt"
	"time"
)

type IrrigationRequest struct {
	Current  *WeatherSnapshot
	Forecast []ForecastPoint // chronological, 3-hour cadence
	// LastRainfallMM is accepted for callers that track it; it does not affect scoring.
	LastRainfallMM *float64
	CropType       string
}

// Advisor derives irrigation advice from weather and the crop water table.
type Advisor struct {
	cfg Config
	now func() time.Time
}

func NewAdvisor(cfg Config) *Advisor {
	return &Advisor{cfg: cfg, now: time.Now}
}

// WithClock returns a copy of the advisor reading time from now.
func (a *Advisor) WithClock(now func() time.Time) *Advisor {
	cp := *a
	cp.now = now
	return &cp
}

func sumRain(points []ForecastPoint, n int) float64 {
	if n > len(points) {
		n = len(points)
	}
	var total float64
	for _, p := range points[:n] {
		total += deref(p.RainfallMM)
	}
	return total
}

// Advise always returns at least one advisory. A nil or empty snapshot yields
// only the informational record.
func (a *Advisor) Advise(req IrrigationRequest) []IrrigationAdvice {
	t := a.cfg.Thresholds
	need := a.cfg.CropNeed(req.CropType)
	cur := req.Current

	base := Params{
		"analysis_timestamp": a.now().Format(time.RFC3339),
		"crop_type":          req.CropType,
		"crop_daily_need_mm": need,
	}
	if cur.Empty() {
		base["temperature"] = nil
		base["humidity"] = nil
		base["rainfall_current"] = nil
		return []IrrigationAdvice{insufficientWeather(base)}
	}

	rainNow := deref(cur.RainfallMM)
	forecast24 := sumRain(req.Forecast, stepsPerDay)
	total24 := rainNow + forecast24
	need24 := need
	deficit := need24 - total24

	base["temperature"] = optional(cur.TemperatureC)
	base["humidity"] = optional(cur.HumidityPct)
	base["rainfall_current"] = rainNow
	base["rainfall_forecast_24h"] = forecast24
	base["rainfall_total_24h"] = total24
	base["need_24h_mm"] = need24
	base["water_deficit_mm"] = deficit

	var out []IrrigationAdvice
	switch {
	case deficit > t.UrgentDeficitMM:
		out = append(out, IrrigationAdvice{
			Kind:  AdviceUrgent,
			Title: "Urgent irrigation recommended",
			Description: fmt.Sprintf("Water deficit is %.1f mm. Forecast rainfall (%.1f mm) does not cover the crop need (%.1f mm/day). Irrigate now.",
				deficit, forecast24, need24),
			RecommendedQuantity: fmt.Sprintf("%.1f mm", deficit),
			Priority:            PriorityHigh,
			Params:              base.clone(),
		})
	case deficit > t.ModerateDeficitMM:
		out = append(out, IrrigationAdvice{
			Kind:                AdviceRecommended,
			Title:               "Irrigation recommended",
			Description:         fmt.Sprintf("Moderate water deficit of %.1f mm. Supplementary irrigation recommended.", deficit),
			RecommendedQuantity: fmt.Sprintf("%.1f mm", deficit),
			Priority:            PriorityMedium,
			Params:              base.clone(),
		})
	case total24 >= need24:
		out = append(out, IrrigationAdvice{
			Kind:                AdviceNotNeeded,
			Title:               "Irrigation not needed",
			Description:         fmt.Sprintf("Forecast rainfall (%.1f mm) covers the crop need. No irrigation needed for now.", forecast24),
			RecommendedQuantity: "0 mm",
			Priority:            PriorityLow,
			Params:              base.clone(),
		})
	}

	tmax := cur.TemperatureMaxC
	if tmax == nil {
		tmax = cur.TemperatureC
	}
	if tmax != nil && *tmax > t.HeatStressC {
		p := base.clone()
		p["temperature_max"] = *tmax
		out = append(out, IrrigationAdvice{
			Kind:                AdviceCooling,
			Title:               "High temperature: cooling irrigation",
			Description:         fmt.Sprintf("Maximum temperature is high (%.1f°C). A light irrigation reduces heat stress.", *tmax),
			RecommendedQuantity: "2-3 mm",
			Priority:            PriorityMedium,
			Params:              p,
		})
	}

	if h := cur.HumidityPct; h != nil && *h < t.DryAirHumidityPct {
		out = append(out, IrrigationAdvice{
			Kind:                AdviceDryAir,
			Title:               "Dry air: irrigation recommended",
			Description:         fmt.Sprintf("Relative humidity is low (%.0f%%). Evapotranspiration is high, irrigate to compensate water loss.", *h),
			RecommendedQuantity: "3-5 mm",
			Priority:            PriorityMedium,
			Params:              base.clone(),
		})
	}

	if len(req.Forecast) >= 2*stepsPerDay {
		rain48 := sumRain(req.Forecast, 2*stepsPerDay)
		need48 := 2 * need
		deficit48 := need48 - rain48
		if deficit48 > t.Deficit48hMM {
			p := base.clone()
			p["rainfall_forecast_48h"] = rain48
			p["need_48h_mm"] = need48
			p["water_deficit_48h_mm"] = deficit48
			out = append(out, IrrigationAdvice{
				Kind:                AdvicePlanning48h,
				Title:               "48h irrigation planning",
				Description:         fmt.Sprintf("Over the next 48 hours the expected water deficit is %.1f mm. Plan %.1f mm spread over 2 days.", deficit48, deficit48),
				RecommendedQuantity: fmt.Sprintf("%.1f mm", deficit48),
				Priority:            PriorityMedium,
				Params:              p,
			})
		}
	}

	if len(out) == 0 {
		out = append(out, insufficientWeather(base))
	}
	return out
}

func insufficientWeather(p Params) IrrigationAdvice {
	return IrrigationAdvice{
		Kind:                AdviceInformational,
		Title:               "Insufficient weather data",
		Description:         "Available weather data does not support precise irrigation advice. Check the holding's GPS coordinates.",
		RecommendedQuantity: "N/A",
		Priority:            PriorityLow,
		Params:              p.clone(),
	}
}
