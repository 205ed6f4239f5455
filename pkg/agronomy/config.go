package agronomy

import (
	"fmt"
	"sort"
	"strings"
)

// stepsPerDay is the number of 3-hour forecast buckets in 24h.
const stepsPerDay = 8

type Thresholds struct {
	PHAcidBelow     float64 `yaml:"ph_acid_below"`
	PHAlkalineAbove float64 `yaml:"ph_alkaline_above"`

	NitrogenMin    float64 `yaml:"nitrogen_min"`
	PhosphorusMin  float64 `yaml:"phosphorus_min"`
	PotassiumMin   float64 `yaml:"potassium_min"`
	NutrientWindow int     `yaml:"nutrient_window"`

	RainfallLowMM  float64 `yaml:"rainfall_low_mm"`
	RainfallHighMM float64 `yaml:"rainfall_high_mm"`

	InputStaleDays int `yaml:"input_stale_days"`

	UrgentDeficitMM   float64 `yaml:"urgent_deficit_mm"`
	ModerateDeficitMM float64 `yaml:"moderate_deficit_mm"`
	HeatStressC       float64 `yaml:"heat_stress_c"`
	DryAirHumidityPct float64 `yaml:"dry_air_humidity_pct"`
	Deficit48hMM      float64 `yaml:"deficit_48h_mm"`
	DefaultCropNeedMM float64 `yaml:"default_crop_need_mm"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PHAcidBelow:       6.0,
		PHAlkalineAbove:   7.5,
		NitrogenMin:       20,
		PhosphorusMin:     15,
		PotassiumMin:      150,
		NutrientWindow:    3,
		RainfallLowMM:     50,
		RainfallHighMM:    300,
		InputStaleDays:    90,
		UrgentDeficitMM:   5,
		ModerateDeficitMM: 2,
		HeatStressC:       35,
		DryAirHumidityPct: 40,
		Deficit48hMM:      10,
		DefaultCropNeedMM: 4.0,
	}
}

// set applies a named override, as used by the XLSX sheet.
func (t *Thresholds) set(name string, v float64) error {
	switch norm(name) {
	case "phacidbelow":
		t.PHAcidBelow = v
	case "phalkalineabove":
		t.PHAlkalineAbove = v
	case "nitrogenmin":
		t.NitrogenMin = v
	case "phosphorusmin":
		t.PhosphorusMin = v
	case "potassiummin":
		t.PotassiumMin = v
	case "nutrientwindow":
		t.NutrientWindow = int(v)
	case "rainfalllowmm":
		t.RainfallLowMM = v
	case "rainfallhighmm":
		t.RainfallHighMM = v
	case "inputstaledays":
		t.InputStaleDays = int(v)
	case "urgentdeficitmm":
		t.UrgentDeficitMM = v
	case "moderatedeficitmm":
		t.ModerateDeficitMM = v
	case "heatstressc":
		t.HeatStressC = v
	case "dryairhumiditypct":
		t.DryAirHumidityPct = v
	case "deficit48hmm":
		t.Deficit48hMM = v
	case "defaultcropneedmm":
		t.DefaultCropNeedMM = v
	default:
		return fmt.Errorf("unknown threshold %q", name)
	}
	return nil
}

// Config is the immutable parameter set shared by Advisor and Engine.
// It is a value: copies never share the crop table.
type Config struct {
	Thresholds
	cropNeeds map[string]float64 // crop -> mm/day, lower-case keys
}

func defaultCropNeeds() map[string]float64 {
	return map[string]float64{
		"maize":   5.0,
		"rice":    8.0,
		"cotton":  6.0,
		"cassava": 3.0,
		"yam":     4.0,
		"tomato":  4.5,
		"bean":    3.5,
	}
}

func Default() Config {
	return Config{Thresholds: DefaultThresholds(), cropNeeds: defaultCropNeeds()}
}

// NewConfig builds a validated Config. A nil needs map keeps the default table.
func NewConfig(t Thresholds, needs map[string]float64) (Config, error) {
	c := Config{Thresholds: t, cropNeeds: defaultCropNeeds()}
	if needs != nil {
		c.cropNeeds = make(map[string]float64, len(needs))
		for k, v := range needs {
			c.cropNeeds[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// CropNeed returns the daily water need in mm for crop, case-insensitive.
// Unknown or empty crops get DefaultCropNeedMM.
func (c Config) CropNeed(crop string) float64 {
	if v, ok := c.cropNeeds[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return v
	}
	return c.DefaultCropNeedMM
}

// Crops returns a copy of the crop water table.
func (c Config) Crops() map[string]float64 {
	out := make(map[string]float64, len(c.cropNeeds))
	for k, v := range c.cropNeeds {
		out[k] = v
	}
	return out
}

func (c Config) validate() error {
	t := c.Thresholds
	if t.PHAcidBelow < 0 || t.PHAlkalineAbove > 14 || t.PHAcidBelow > t.PHAlkalineAbove {
		return fmt.Errorf("invalid pH band [%v, %v]", t.PHAcidBelow, t.PHAlkalineAbove)
	}
	if t.NitrogenMin < 0 || t.PhosphorusMin < 0 || t.PotassiumMin < 0 {
		return fmt.Errorf("nutrient minimums must be >= 0")
	}
	if t.NutrientWindow < 1 {
		return fmt.Errorf("nutrient_window must be >= 1, got %d", t.NutrientWindow)
	}
	if t.RainfallLowMM < 0 || t.RainfallLowMM > t.RainfallHighMM {
		return fmt.Errorf("invalid rainfall band [%v, %v]", t.RainfallLowMM, t.RainfallHighMM)
	}
	if t.InputStaleDays < 0 {
		return fmt.Errorf("input_stale_days must be >= 0")
	}
	if t.ModerateDeficitMM > t.UrgentDeficitMM {
		return fmt.Errorf("moderate deficit %v above urgent deficit %v", t.ModerateDeficitMM, t.UrgentDeficitMM)
	}
	if t.DefaultCropNeedMM < 0 {
		return fmt.Errorf("default_crop_need_mm must be >= 0")
	}
	names := make([]string, 0, len(c.cropNeeds))
	for k := range c.cropNeeds {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if k == "" {
			return fmt.Errorf("empty crop name in water table")
		}
		if c.cropNeeds[k] < 0 {
			return fmt.Errorf("negative water need for %s", k)
		}
	}
	return nil
}
