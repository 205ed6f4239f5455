package agronomy

import (
	"fmt"
	"time"

	"agronome/entities"
)

const dateLayout = "2006-01-02"

// HoldingRecords is what the caller loaded for one holding, newest first:
// every soil analysis, up to 5 climate windows and up to 10 input applications.
type HoldingRecords struct {
	SoilAnalyses   []entities.SoilAnalysis
	ClimateWindows []entities.ClimateWindow
	Inputs         []entities.InputApplication
}

// Engine evaluates a holding's records against the agronomic thresholds.
type Engine struct {
	cfg Config
	now func() time.Time
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, now: time.Now}
}

func (e *Engine) WithClock(now func() time.Time) *Engine {
	cp := *e
	cp.now = now
	return &cp
}

func (e *Engine) Config() Config { return e.cfg }

// Evaluate runs every rule independently. The informational fallback is
// emitted only when nothing fired and there is neither soil nor climate data.
func (e *Engine) Evaluate(in HoldingRecords) []Recommendation {
	var out []Recommendation
	if len(in.SoilAnalyses) > 0 {
		out = append(out, e.soilRules(in.SoilAnalyses)...)
	}
	if len(in.ClimateWindows) > 0 {
		if r, ok := e.climateRule(in.ClimateWindows[0]); ok {
			out = append(out, r)
		}
	}
	if len(in.Inputs) > 0 {
		if r, ok := e.inputRule(in.Inputs); ok {
			out = append(out, r)
		}
	}
	if len(out) == 0 && len(in.SoilAnalyses) == 0 && len(in.ClimateWindows) == 0 {
		out = append(out, Recommendation{
			Category:    CategoryInformation,
			Title:       "Insufficient data",
			Description: "No recommendation can be generated yet: soil analyses and climate data are missing. Record data to get tailored recommendations.",
			Params:      Params{},
			Priority:    PriorityLow,
		})
	}
	return out
}

func soilParams(a entities.SoilAnalysis) Params {
	p := Params{
		"ph":         optional(a.PH),
		"nitrogen":   optional(a.NitrogenMgKg),
		"phosphorus": optional(a.PhosphorusMgKg),
		"potassium":  optional(a.PotassiumMgKg),
	}
	if a.SampleDate.IsZero() {
		p["sample_date"] = nil
	} else {
		p["sample_date"] = a.SampleDate.Format(dateLayout)
	}
	return p
}

func (e *Engine) soilRules(analyses []entities.SoilAnalysis) []Recommendation {
	t := e.cfg.Thresholds
	latest := analyses[0]
	base := soilParams(latest)
	var out []Recommendation

	if ph := latest.PH; ph != nil {
		switch {
		case *ph < t.PHAcidBelow:
			p := base.clone()
			p["ph_threshold"] = t.PHAcidBelow
			out = append(out, Recommendation{
				Category:    CategoryAmendment,
				Title:       "Soil too acidic",
				Description: fmt.Sprintf("Soil pH (%.2f) is below %.1f. Apply lime to raise the pH.", *ph, t.PHAcidBelow),
				Params:      p,
				Priority:    PriorityHigh,
				ParcelID:    latest.ParcelID,
			})
		case *ph > t.PHAlkalineAbove:
			p := base.clone()
			p["ph_threshold"] = t.PHAlkalineAbove
			out = append(out, Recommendation{
				Category:    CategoryAmendment,
				Title:       "Soil too alkaline",
				Description: fmt.Sprintf("Soil pH (%.2f) is above %.1f. Add sulfur or organic matter to lower the pH.", *ph, t.PHAlkalineAbove),
				Params:      p,
				Priority:    PriorityMedium,
				ParcelID:    latest.ParcelID,
			})
		}
	}

	if !latest.HasNPK() {
		return out
	}

	if len(analyses) == 1 {
		// single analysis: only nitrogen is checked
		n := *latest.NitrogenMgKg
		if n < t.NitrogenMin {
			p := base.clone()
			p["nitrogen_threshold"] = t.NitrogenMin
			out = append(out, Recommendation{
				Category:    CategoryFertilization,
				Title:       "Nitrogen deficiency",
				Description: fmt.Sprintf("Nitrogen content (%.2f mg/kg) is low. Apply a nitrogen fertilizer.", n),
				Params:      p,
				Priority:    PriorityHigh,
				ParcelID:    latest.ParcelID,
			})
		}
		return out
	}

	window := analyses
	if len(window) > t.NutrientWindow {
		window = window[:t.NutrientWindow]
	}
	avgN := average(window, func(a entities.SoilAnalysis) *float64 { return a.NitrogenMgKg })
	avgP := average(window, func(a entities.SoilAnalysis) *float64 { return a.PhosphorusMgKg })
	avgK := average(window, func(a entities.SoilAnalysis) *float64 { return a.PotassiumMgKg })

	nutrients := base.clone()
	nutrients["avg_nitrogen"] = avgN
	nutrients["avg_phosphorus"] = avgP
	nutrients["avg_potassium"] = avgK
	nutrients["samples"] = len(window)

	if avgN < t.NitrogenMin {
		p := nutrients.clone()
		p["nitrogen_threshold"] = t.NitrogenMin
		out = append(out, Recommendation{
			Category:    CategoryFertilization,
			Title:       "Nitrogen deficiency",
			Description: fmt.Sprintf("Average nitrogen content (%.2f mg/kg) is low. Apply a nitrogen fertilizer.", avgN),
			Params:      p,
			Priority:    PriorityHigh,
			ParcelID:    latest.ParcelID,
		})
	}
	if avgP < t.PhosphorusMin {
		p := nutrients.clone()
		p["phosphorus_threshold"] = t.PhosphorusMin
		out = append(out, Recommendation{
			Category:    CategoryFertilization,
			Title:       "Phosphorus deficiency",
			Description: fmt.Sprintf("Average phosphorus content (%.2f mg/kg) is low. Apply a phosphate fertilizer.", avgP),
			Params:      p,
			Priority:    PriorityHigh,
			ParcelID:    latest.ParcelID,
		})
	}
	if avgK < t.PotassiumMin {
		p := nutrients.clone()
		p["potassium_threshold"] = t.PotassiumMin
		out = append(out, Recommendation{
			Category:    CategoryFertilization,
			Title:       "Potassium deficiency",
			Description: fmt.Sprintf("Average potassium content (%.2f mg/kg) is low. Apply a potassium fertilizer.", avgK),
			Params:      p,
			Priority:    PriorityMedium,
			ParcelID:    latest.ParcelID,
		})
	}
	return out
}

// average skips analyses where the nutrient is missing. The latest analysis
// always carries it, so the denominator is never zero.
func average(window []entities.SoilAnalysis, get func(entities.SoilAnalysis) *float64) float64 {
	var sum float64
	var n int
	for _, a := range window {
		if v := get(a); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (e *Engine) climateRule(w entities.ClimateWindow) (Recommendation, bool) {
	t := e.cfg.Thresholds
	if w.RainfallMM == nil {
		return Recommendation{}, false
	}
	rain := *w.RainfallMM
	p := Params{
		"min_temp":    optional(w.MinTempC),
		"max_temp":    optional(w.MaxTempC),
		"rainfall_mm": rain,
		"period":      fmt.Sprintf("%s to %s", w.StartDate.Format(dateLayout), w.EndDate.Format(dateLayout)),
	}
	switch {
	case rain < t.RainfallLowMM:
		p["rainfall_threshold"] = t.RainfallLowMM
		return Recommendation{
			Category:    CategoryIrrigation,
			Title:       "Insufficient rainfall",
			Description: fmt.Sprintf("Observed rainfall (%.1f mm) is low. Supplementary irrigation recommended.", rain),
			Params:      p,
			Priority:    PriorityHigh,
		}, true
	case rain > t.RainfallHighMM:
		p["rainfall_threshold"] = t.RainfallHighMM
		return Recommendation{
			Category:    CategoryWaterManagement,
			Title:       "Excessive rainfall",
			Description: fmt.Sprintf("Observed rainfall (%.1f mm) is high. Check drainage and avoid waterlogging.", rain),
			Params:      p,
			Priority:    PriorityMedium,
		}, true
	}
	return Recommendation{}, false
}

// daysBetween counts calendar days from a to b. Each date is read in its own
// location: AppliedOn is a stored civil date, b is the wall clock.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func (e *Engine) inputRule(inputs []entities.InputApplication) (Recommendation, bool) {
	last := inputs[0]
	for _, in := range inputs[1:] {
		if in.AppliedOn.After(last.AppliedOn) {
			last = in
		}
	}
	days := daysBetween(last.AppliedOn, e.now())
	if days <= e.cfg.InputStaleDays {
		return Recommendation{}, false
	}
	return Recommendation{
		Category:    CategoryPlanning,
		Title:       "Input plan review needed",
		Description: fmt.Sprintf("No input applied for %d days. Review the fertilization plan.", days),
		Params: Params{
			"last_input_type": last.InputType,
			"applied_on":      last.AppliedOn.Format(dateLayout),
			"days_elapsed":    days,
			"stale_days":      e.cfg.InputStaleDays,
		},
		Priority: PriorityMedium,
		ParcelID: last.ParcelID,
	}, true
}
