package agronomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

const thresholdsSheet = "Thresholds"

type yamlOverrides struct {
	Thresholds Thresholds         `yaml:"thresholds"`
	CropNeeds  map[string]float64 `yaml:"crop_needs"`
}

// LoadFromFiles layers optional overrides on top of Default(): YAML first,
// then the crop water CSV, then the thresholds workbook. Empty paths are skipped.
func LoadFromFiles(yamlPath, cropCSV, thresholdsXLSX string) (Config, error) {
	t := DefaultThresholds()
	needs := defaultCropNeeds()

	if yamlPath != "" {
		if err := loadYAML(yamlPath, &t, needs); err != nil {
			return Config{}, fmt.Errorf("agronomy yaml: %w", err)
		}
	}
	if cropCSV != "" {
		if err := loadCropCSV(cropCSV, needs); err != nil {
			return Config{}, fmt.Errorf("crop needs csv: %w", err)
		}
	}
	if thresholdsXLSX != "" {
		if err := loadThresholdsXLSX(thresholdsXLSX, &t); err != nil {
			return Config{}, fmt.Errorf("thresholds xlsx: %w", err)
		}
	}
	return NewConfig(t, needs)
}

func loadYAML(path string, t *Thresholds, needs map[string]float64) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ov := yamlOverrides{Thresholds: *t}
	if err := yaml.Unmarshal(b, &ov); err != nil {
		return err
	}
	*t = ov.Thresholds
	for k, v := range ov.CropNeeds {
		needs[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return nil
}

// norm folds header and threshold names so "Mm per day", "mm_per_day" and
// "mm-per-day" compare equal.
func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func loadCropCSV(path string, needs map[string]float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return err
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("crop", "crop_type", "culture")
	cNeed := findAny("mm_per_day", "water_mm_day", "daily_need_mm", "need")
	if cCrop == -1 || cNeed == -1 {
		return fmt.Errorf("missing required columns, found headers %v, need crop and mm_per_day", head)
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		line++
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := strings.ToLower(get(cCrop))
		if crop == "" {
			continue
		}
		v, err := strconv.ParseFloat(get(cNeed), 64)
		if err != nil {
			return fmt.Errorf("line %d: bad water need %q", line, get(cNeed))
		}
		needs[crop] = v
	}
	return nil
}

func loadThresholdsXLSX(path string, t *Thresholds) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	rows, err := x.GetRows(thresholdsSheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return fmt.Errorf("row %d: bad value %q", i+1, row[1])
		}
		if err := t.set(row[0], v); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}
