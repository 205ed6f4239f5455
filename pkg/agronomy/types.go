package agronomy

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Category string

const (
	CategoryAmendment       Category = "Amendment"
	CategoryFertilization   Category = "Fertilization"
	CategoryIrrigation      Category = "Irrigation"
	CategoryWaterManagement Category = "Water management"
	CategoryPlanning        Category = "Planning"
	CategoryInformation     Category = "Information"
)

// Params holds the operands that drove a decision, for audit and display.
type Params map[string]any

func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Recommendation is one advisory produced by Engine.Evaluate. ParcelID is set
// when the triggering record belonged to a parcel.
type Recommendation struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Params      Params   `json:"parameters_used"`
	Priority    Priority `json:"priority"`
	ParcelID    *uint    `json:"parcel_id,omitempty"`
}

type AdviceKind string

const (
	AdviceUrgent        AdviceKind = "urgent_irrigation"
	AdviceRecommended   AdviceKind = "irrigation_recommended"
	AdviceNotNeeded     AdviceKind = "irrigation_not_needed"
	AdviceCooling       AdviceKind = "cooling_irrigation"
	AdviceDryAir        AdviceKind = "dry_air_irrigation"
	AdvicePlanning48h   AdviceKind = "irrigation_planning_48h"
	AdviceInformational AdviceKind = "information"
)

type IrrigationAdvice struct {
	Kind                AdviceKind `json:"kind"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	RecommendedQuantity string     `json:"recommended_quantity"`
	Priority            Priority   `json:"priority"`
	Params              Params     `json:"parameters_used"`
}

type Outcome string

const (
	OutcomeGood    Outcome = "good"
	OutcomeAverage Outcome = "average"
	OutcomeBad     Outcome = "bad"
)

type ForecastResult struct {
	PredictedQuantity float64 `json:"predicted_quantity"`
	ProbabilityGood   float64 `json:"probability_good"`
	ProbabilityBad    float64 `json:"probability_bad"`
	Prediction        Outcome `json:"prediction"`
	Reason            string  `json:"reason"`
	Factors           Params  `json:"factors"`
}

// WeatherSnapshot is the "current" conditions. TemperatureMaxC falls back to
// TemperatureC when unset.
type WeatherSnapshot struct {
	TemperatureC    *float64 `json:"temperature"`
	TemperatureMaxC *float64 `json:"temperature_max"`
	HumidityPct     *float64 `json:"humidity"`
	RainfallMM      *float64 `json:"rainfall"`
}

// Empty reports whether no field of the snapshot is set.
func (w *WeatherSnapshot) Empty() bool {
	return w == nil || (w.TemperatureC == nil && w.TemperatureMaxC == nil && w.HumidityPct == nil && w.RainfallMM == nil)
}

// ForecastPoint is one 3-hour bucket.
type ForecastPoint struct {
	At         time.Time `json:"at"`
	RainfallMM *float64  `json:"rainfall"`
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// optional returns the pointed value or nil, so that params keep "absent" visible.
func optional(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
