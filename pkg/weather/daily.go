package weather

import (
	"sort"
	"time"
)

type Daily struct {
	Date         string   `json:"date"`
	TemperatureC *float64 `json:"temperature"`
	TempMinC     *float64 `json:"temperature_min"`
	TempMaxC     *float64 `json:"temperature_max"`
	HumidityPct  *float64 `json:"humidity"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	RainfallMM   float64  `json:"rainfall"`
}

// GroupByDay folds 3-hour buckets into one entry per calendar day (UTC),
// oldest first. The representative bucket is the first one between 10h and
// 14h, or the middle bucket of the day.
func GroupByDay(points []Conditions) []Daily {
	var keys []string
	byDay := map[string][]Conditions{}
	for _, p := range points {
		if p.At.IsZero() {
			continue
		}
		k := p.At.UTC().Format(time.DateOnly)
		if _, ok := byDay[k]; !ok {
			keys = append(keys, k)
		}
		byDay[k] = append(byDay[k], p)
	}
	sort.Strings(keys)

	out := make([]Daily, 0, len(keys))
	for _, k := range keys {
		day := byDay[k]
		var mid *Conditions
		for i := range day {
			if h := day[i].At.UTC().Hour(); h >= 10 && h <= 14 {
				mid = &day[i]
				break
			}
		}
		if mid == nil {
			mid = &day[len(day)/2]
		}

		var temps, mins, maxs []float64
		var rain float64
		for _, p := range day {
			if p.TemperatureC != nil {
				temps = append(temps, *p.TemperatureC)
			}
			if p.TempMinC != nil {
				mins = append(mins, *p.TempMinC)
			}
			if p.TempMaxC != nil {
				maxs = append(maxs, *p.TempMaxC)
			}
			rain += p.RainfallMM
		}

		d := Daily{
			Date:         k,
			TemperatureC: firstOf(maxOf(temps), mid.TemperatureC),
			TempMinC:     firstOf(minOf(mins), minOf(temps), mid.TempMinC),
			TempMaxC:     firstOf(maxOf(maxs), maxOf(temps), mid.TempMaxC),
			HumidityPct:  mid.HumidityPct,
			Description:  mid.Description,
			Icon:         mid.Icon,
			RainfallMM:   rain,
		}
		out = append(out, d)
	}
	return out
}

func minOf(v []float64) *float64 {
	if len(v) == 0 {
		return nil
	}
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return &m
}

func maxOf(v []float64) *float64 {
	if len(v) == 0 {
		return nil
	}
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return &m
}

func firstOf(ps ...*float64) *float64 {
	for _, p := range ps {
		if p != nil {
			return p
		}
	}
	return nil
}
