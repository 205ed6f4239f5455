package agronomy

import (
	"fmt"
	"math"
	"sort"

	"agronome/entities"
)

const (
	MaxHarvestSamples = 12
	MinHarvestSamples = 3
	TrendWeight       = 1.2
)

// ForecastNextHarvest predicts the next harvest quantity from the most recent
// records of one holding and crop. Records are re-sorted newest first by
// (year, month) and capped at MaxHarvestSamples. Below MinHarvestSamples the
// result is the neutral forecast with zeroed factors.
func ForecastNextHarvest(records []entities.HarvestRecord) ForecastResult {
	recs := append([]entities.HarvestRecord(nil), records...)
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Year != recs[j].Year {
			return recs[i].Year > recs[j].Year
		}
		return recs[i].Month > recs[j].Month
	})
	if len(recs) > MaxHarvestSamples {
		recs = recs[:MaxHarvestSamples]
	}

	n := len(recs)
	if n < MinHarvestSamples {
		return ForecastResult{
			PredictedQuantity: 0,
			ProbabilityGood:   50,
			ProbabilityBad:    50,
			Prediction:        OutcomeAverage,
			Reason:            "insufficient data",
			Factors: Params{
				"historicalMean":    0.0,
				"trend":             0.0,
				"standardDeviation": 0.0,
				"sampleCount":       n,
			},
		}
	}

	qs := make([]float64, n)
	for i, r := range recs {
		qs[i] = r.Quantity
	}
	s := Summarize(qs)
	trend := (qs[0] - qs[n-1]) / float64(n)
	predicted := s.Mean + TrendWeight*trend

	outcome, pGood, pBad := classify(predicted, s.Mean, s.StdDev)
	return ForecastResult{
		PredictedQuantity: round(predicted, 2),
		ProbabilityGood:   round(pGood, 1),
		ProbabilityBad:    round(pBad, 1),
		Prediction:        outcome,
		Reason:            fmt.Sprintf("based on %d historical harvests", n),
		Factors: Params{
			"historicalMean":    s.Mean,
			"trend":             trend,
			"standardDeviation": s.StdDev,
			"sampleCount":       n,
		},
	}
}

func classify(predicted, mean, sd float64) (Outcome, float64, float64) {
	switch {
	case predicted > mean+sd:
		return OutcomeGood, 70, 30
	case predicted < mean-sd:
		return OutcomeBad, 30, 70
	default:
		return OutcomeAverage, 50, 50
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
