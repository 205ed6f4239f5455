package agronomy

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// Summarize returns min/max/mean/median and the population standard deviation.
// An empty input yields the zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(sorted, nil)
	lo, hi := sorted[0], sorted[n-1]
	// float summation can land a hair outside the range
	mean = math.Min(math.Max(mean, lo), hi)
	if variance < 0 {
		variance = 0
	}

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return Summary{
		Min:    lo,
		Max:    hi,
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(variance),
		Count:  n,
	}
}
