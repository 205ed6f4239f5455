package agronomy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agronome/entities"
)

func testEngine() *Engine {
	return NewEngine(Default()).WithClock(func() time.Time { return fixedNow })
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func uptr(v uint) *uint { return &v }

func soil(date time.Time, ph, n, p, k *float64) entities.SoilAnalysis {
	return entities.SoilAnalysis{SampleDate: date, PH: ph, NitrogenMgKg: n, PhosphorusMgKg: p, PotassiumMgKg: k}
}

func titles(recs []Recommendation) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

func TestEvaluate_Fallback(t *testing.T) {
	out := testEngine().Evaluate(HoldingRecords{})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryInformation, out[0].Category)
	assert.Equal(t, PriorityLow, out[0].Priority)
	assert.Empty(t, out[0].Params)
}

func TestEvaluate_RecentInputDoesNotSuppressFallback(t *testing.T) {
	out := testEngine().Evaluate(HoldingRecords{
		Inputs: []entities.InputApplication{{InputType: "fertilizer", AppliedOn: day(2025, 6, 1)}},
	})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryInformation, out[0].Category)
}

func TestEvaluate_StaleInputAlone(t *testing.T) {
	out := testEngine().Evaluate(HoldingRecords{
		Inputs: []entities.InputApplication{{InputType: "fertilizer", AppliedOn: day(2025, 3, 1), ParcelID: uptr(4)}},
	})
	require.Len(t, out, 1)
	r := out[0]
	assert.Equal(t, CategoryPlanning, r.Category)
	assert.Equal(t, PriorityMedium, r.Priority)
	assert.Equal(t, "fertilizer", r.Params["last_input_type"])
	assert.Equal(t, "2025-03-01", r.Params["applied_on"])
	assert.Equal(t, 106, r.Params["days_elapsed"])
	assert.Equal(t, 90, r.Params["stale_days"])
	assert.Equal(t, uint(4), *r.ParcelID)
}

func TestEvaluate_InputExactlyNinetyDaysIsFresh(t *testing.T) {
	out := testEngine().Evaluate(HoldingRecords{
		SoilAnalyses: []entities.SoilAnalysis{soil(day(2025, 6, 1), f(6.5), nil, nil, nil)},
		Inputs: []entities.InputApplication{
			{InputType: "seed", AppliedOn: day(2025, 1, 2)},
			{InputType: "pesticide", AppliedOn: fixedNow.AddDate(0, 0, -90)},
		},
	})
	assert.Empty(t, out)
}

func TestEvaluate_StalenessUsesCivilDates(t *testing.T) {
	west := time.FixedZone("UTC-4", -4*3600)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, west)
	e := NewEngine(Default()).WithClock(func() time.Time { return now })

	out := e.Evaluate(HoldingRecords{
		SoilAnalyses: []entities.SoilAnalysis{soil(day(2025, 6, 1), f(6.5), nil, nil, nil)},
		Inputs:       []entities.InputApplication{{InputType: "fertilizer", AppliedOn: day(2025, 3, 17)}},
	})
	assert.Empty(t, out, "90 calendar days is not stale")

	out = e.Evaluate(HoldingRecords{
		SoilAnalyses: []entities.SoilAnalysis{soil(day(2025, 6, 1), f(6.5), nil, nil, nil)},
		Inputs:       []entities.InputApplication{{InputType: "fertilizer", AppliedOn: day(2025, 3, 16)}},
	})
	require.Len(t, out, 1)
	assert.Equal(t, 91, out[0].Params["days_elapsed"])
}

func TestEvaluate_SingleAcidAnalysis(t *testing.T) {
	a := soil(day(2025, 5, 20), f(5.5), nil, nil, nil)
	a.ParcelID = uptr(9)
	out := testEngine().Evaluate(HoldingRecords{SoilAnalyses: []entities.SoilAnalysis{a}})
	require.Len(t, out, 1)
	r := out[0]
	assert.Equal(t, CategoryAmendment, r.Category)
	assert.Equal(t, PriorityHigh, r.Priority)
	assert.Contains(t, r.Title, "acidic")
	assert.Equal(t, 5.5, r.Params["ph"])
	assert.Equal(t, 6.0, r.Params["ph_threshold"])
	assert.Equal(t, "2025-05-20", r.Params["sample_date"])
	assert.Equal(t, uint(9), *r.ParcelID)
}

func TestEvaluate_PHBand(t *testing.T) {
	out := testEngine().Evaluate(HoldingRecords{SoilAnalyses: []entities.SoilAnalysis{soil(day(2025, 5, 1), f(8.1), nil, nil, nil)}})
	require.Len(t, out, 1)
	assert.Equal(t, "Soil too alkaline", out[0].Title)
	assert.Equal(t, PriorityMedium, out[0].Priority)
	assert.Equal(t, 7.5, out[0].Params["ph_threshold"])

	for _, ph := range []float64{0, 14, 6.0, 7.5} {
		out := testEngine().Evaluate(HoldingRecords{SoilAnalyses: []entities.SoilAnalysis{soil(day(2025, 5, 1), f(ph), nil, nil, nil)}})
		switch ph {
		case 0:
			assert.Equal(t, []string{"Soil too acidic"}, titles(out))
		case 14:
			assert.Equal(t, []string{"Soil too alkaline"}, titles(out))
		default:
			assert.Empty(t, out, "pH %v is inside the band", ph)
		}
	}
}

func TestEvaluate_SingleAnalysisChecksNitrogenOnly(t *testing.T) {
	out := testEngine().Evaluate(HoldingRecords{
		SoilAnalyses: []entities.SoilAnalysis{soil(day(2025, 5, 1), nil, f(10), f(5), f(50))},
	})
	require.Equal(t, []string{"Nitrogen deficiency"}, titles(out))
	assert.Equal(t, CategoryFertilization, out[0].Category)
	assert.Equal(t, PriorityHigh, out[0].Priority)
	assert.Equal(t, 10.0, out[0].Params["nitrogen"])
	assert.Equal(t, 20.0, out[0].Params["nitrogen_threshold"])
}

func TestEvaluate_NutrientAverages(t *testing.T) {
	analyses := []entities.SoilAnalysis{
		soil(day(2025, 5, 1), nil, f(10), f(10), f(100)),
		soil(day(2025, 3, 1), nil, f(20), nil, f(100)),
		soil(day(2025, 1, 1), nil, f(15), f(14), f(130)),
		soil(day(2024, 6, 1), nil, f(500), f(500), f(500)), // outside the window
	}
	out := testEngine().Evaluate(HoldingRecords{SoilAnalyses: analyses})
	require.Equal(t, []string{"Nitrogen deficiency", "Phosphorus deficiency", "Potassium deficiency"}, titles(out))

	p := out[1].Params
	assert.InDelta(t, 15.0, p["avg_nitrogen"], 1e-9)
	assert.InDelta(t, 12.0, p["avg_phosphorus"], 1e-9)
	assert.InDelta(t, 110.0, p["avg_potassium"], 1e-9)
	assert.Equal(t, 15.0, p["phosphorus_threshold"])
	assert.Equal(t, "2025-05-01", p["sample_date"])
	assert.Equal(t, PriorityMedium, out[2].Priority)
	assert.Equal(t, 150.0, out[2].Params["potassium_threshold"])
}

func TestEvaluate_NutrientsSkippedWhenLatestIncomplete(t *testing.T) {
	analyses := []entities.SoilAnalysis{
		soil(day(2025, 5, 1), f(5.0), f(10), nil, f(100)),
		soil(day(2025, 3, 1), nil, f(10), f(10), f(100)),
	}
	out := testEngine().Evaluate(HoldingRecords{SoilAnalyses: analyses})
	assert.Equal(t, []string{"Soil too acidic"}, titles(out))
}

func TestEvaluate_ParamsNotShared(t *testing.T) {
	analyses := []entities.SoilAnalysis{
		soil(day(2025, 5, 1), f(5.0), f(10), f(10), f(100)),
		soil(day(2025, 3, 1), nil, f(10), f(10), f(100)),
	}
	out := testEngine().Evaluate(HoldingRecords{SoilAnalyses: analyses})
	require.Len(t, out, 4)
	assert.NotContains(t, out[0].Params, "avg_nitrogen")
	assert.NotContains(t, out[1].Params, "phosphorus_threshold")
}

func TestEvaluate_Climate(t *testing.T) {
	win := func(rain *float64) []entities.ClimateWindow {
		return []entities.ClimateWindow{
			{StartDate: day(2025, 5, 1), EndDate: day(2025, 5, 31), MinTempC: f(21), MaxTempC: f(33), RainfallMM: rain},
			{StartDate: day(2025, 4, 1), EndDate: day(2025, 4, 30), RainfallMM: f(10)},
		}
	}

	out := testEngine().Evaluate(HoldingRecords{ClimateWindows: win(f(30))})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryIrrigation, out[0].Category)
	assert.Equal(t, PriorityHigh, out[0].Priority)
	assert.Equal(t, 30.0, out[0].Params["rainfall_mm"])
	assert.Equal(t, 50.0, out[0].Params["rainfall_threshold"])
	assert.Equal(t, "2025-05-01 to 2025-05-31", out[0].Params["period"])
	assert.Nil(t, out[0].ParcelID)

	out = testEngine().Evaluate(HoldingRecords{ClimateWindows: win(f(350))})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryWaterManagement, out[0].Category)
	assert.Equal(t, PriorityMedium, out[0].Priority)

	for _, rain := range []*float64{f(50), f(300), nil} {
		assert.Empty(t, testEngine().Evaluate(HoldingRecords{ClimateWindows: win(rain)}))
	}
}

func TestEvaluate_RulesCombine(t *testing.T) {
	out := testEngine().Evaluate(HoldingRecords{
		SoilAnalyses:   []entities.SoilAnalysis{soil(day(2025, 5, 1), f(5.2), f(12), f(40), f(300))},
		ClimateWindows: []entities.ClimateWindow{{StartDate: day(2025, 5, 1), RainfallMM: f(12)}},
		Inputs:         []entities.InputApplication{{InputType: "amendment", AppliedOn: day(2024, 12, 1)}},
	})
	assert.Equal(t, []string{"Soil too acidic", "Nitrogen deficiency", "Insufficient rainfall", "Input plan review needed"}, titles(out))
}

func TestDaysBetween(t *testing.T) {
	late := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	early := time.Date(2025, 3, 2, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 1, daysBetween(late, early))
	assert.Equal(t, 0, daysBetween(early, early))
}
