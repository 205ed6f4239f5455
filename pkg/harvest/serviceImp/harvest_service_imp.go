package serviceImp

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"agronome/entities"
	"agronome/pkg/agronomy"
	"agronome/pkg/harvest/repository"
	holdingRepo "agronome/pkg/holding/repository"
	"agronome/pkg/harvest/service"
)

type harvestSvc struct {
	r        repository.HarvestRepository
	holdings holdingRepo.HoldingRepository
}

func NewHarvestService(r repository.HarvestRepository, holdings holdingRepo.HoldingRepository) service.HarvestService {
	return &harvestSvc{r: r, holdings: holdings}
}

func toRecord(row service.Row) (*entities.HarvestRecord, error) {
	crop := strings.ToLower(strings.TrimSpace(row.CropType))
	if row.HoldingID == 0 || crop == "" || row.Month == 0 || row.Year == 0 || row.Quantity == 0 {
		return nil, service.ErrIncomplete
	}
	if row.Month < 1 || row.Month > 12 {
		return nil, &service.InvalidError{Msg: "month must be between 1 and 12"}
	}
	if row.Quantity < 0 {
		return nil, &service.InvalidError{Msg: "quantity must be > 0"}
	}
	if row.AreaHa != nil && *row.AreaHa < 0 {
		return nil, &service.InvalidError{Msg: "area_ha must be >= 0"}
	}
	unit := row.Unit
	if unit == "" {
		unit = "kg"
	}
	h := &entities.HarvestRecord{
		HoldingID: row.HoldingID, ParcelID: row.ParcelID, CropType: crop,
		Month: row.Month, Year: row.Year, Quantity: row.Quantity, Unit: unit,
		AreaHa: row.AreaHa, Yield: row.Yield, SalePrice: row.SalePrice, ProductionCost: row.ProductionCost,
		Quality: row.Quality, Notes: row.Notes,
	}
	h.DeriveYield()
	return h, nil
}

func (s *harvestSvc) owned(uid string, holdingID uint) error {
	_, err := s.holdings.FindByID(holdingID, uid)
	return err
}

func (s *harvestSvc) Record(uid string, row service.Row) (*entities.HarvestRecord, error) {
	h, err := toRecord(row)
	if err != nil {
		return nil, err
	}
	if err := s.owned(uid, h.HoldingID); err != nil {
		return nil, err
	}
	if err := s.r.Create(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Import stores every valid row and reports the others by 1-based line.
func (s *harvestSvc) Import(uid string, rows []service.Row) service.ImportResult {
	res := service.ImportResult{Errors: []string{}, Records: []entities.HarvestRecord{}}
	for i, row := range rows {
		h, err := toRecord(row)
		if err == nil {
			err = s.owned(uid, h.HoldingID)
		}
		if err == nil {
			err = s.r.Create(h)
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}
		res.Imported++
		res.Records = append(res.Records, *h)
	}
	return res
}

var xlsxColumns = map[string][]string{
	"holding_id":      {"holding_id", "holding", "holdingid"},
	"parcel_id":       {"parcel_id", "parcel"},
	"crop_type":       {"crop_type", "crop", "culture"},
	"month":           {"month"},
	"year":            {"year"},
	"quantity":        {"quantity", "quantity_harvested", "qty"},
	"unit":            {"unit"},
	"area_ha":         {"area_ha", "area", "area_harvested"},
	"yield":           {"yield"},
	"sale_price":      {"sale_price", "price"},
	"production_cost": {"production_cost", "cost"},
	"quality":         {"quality"},
	"notes":           {"notes", "observations"},
}

func normHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// ImportXLSX reads the first sheet: a header row, then one harvest per row.
// Unparseable numbers make the row incomplete rather than failing the file.
func (s *harvestSvc) ImportXLSX(uid string, r io.Reader) (service.ImportResult, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return service.ImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return service.ImportResult{}, errors.New("workbook has no sheet")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return service.ImportResult{}, err
	}
	if len(rows) == 0 {
		return service.ImportResult{}, errors.New("empty sheet")
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		for key, aliases := range xlsxColumns {
			for _, a := range aliases {
				if normHeader(h) == normHeader(a) {
					col[key] = i
				}
			}
		}
	}
	for _, need := range []string{"holding_id", "crop_type", "month", "year", "quantity"} {
		if _, ok := col[need]; !ok {
			return service.ImportResult{}, fmt.Errorf("missing column %q", need)
		}
	}

	var out []service.Row
	for _, rec := range rows[1:] {
		get := func(key string) string {
			i, ok := col[key]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		num := func(key string) *float64 {
			v, err := strconv.ParseFloat(get(key), 64)
			if err != nil {
				return nil
			}
			return &v
		}
		integer := func(key string) int {
			if v := num(key); v != nil {
				return int(*v)
			}
			return 0
		}
		row := service.Row{
			HoldingID: uint(integer("holding_id")),
			CropType:  get("crop_type"),
			Month:     integer("month"),
			Year:      integer("year"),
			Unit:      get("unit"),
			AreaHa:    num("area_ha"),
			Yield:     num("yield"),
			SalePrice: num("sale_price"),
			Quality:   get("quality"),
			Notes:     get("notes"),

			ProductionCost: num("production_cost"),
		}
		if q := num("quantity"); q != nil {
			row.Quantity = *q
		}
		if p := integer("parcel_id"); p > 0 {
			pid := uint(p)
			row.ParcelID = &pid
		}
		out = append(out, row)
	}
	return s.Import(uid, out), nil
}

func (s *harvestSvc) List(uid string, f repository.Filter) ([]entities.HarvestRecord, error) {
	if err := s.owned(uid, f.HoldingID); err != nil {
		return nil, err
	}
	f.CropType = strings.ToLower(f.CropType)
	return s.r.Find(f)
}

func (s *harvestSvc) Statistics(uid string, f repository.Filter) (agronomy.Summary, error) {
	if f.HoldingID != 0 {
		if err := s.owned(uid, f.HoldingID); err != nil {
			return agronomy.Summary{}, err
		}
	} else {
		mine, err := s.holdings.List(uid)
		if err != nil {
			return agronomy.Summary{}, err
		}
		f.HoldingIDs = make([]uint, 0, len(mine))
		for _, h := range mine {
			f.HoldingIDs = append(f.HoldingIDs, h.HoldingID)
		}
	}
	f.CropType = strings.ToLower(f.CropType)
	recs, err := s.r.Find(f)
	if err != nil {
		return agronomy.Summary{}, err
	}
	qs := make([]float64, 0, len(recs))
	for _, h := range recs {
		qs = append(qs, h.Quantity)
	}
	return agronomy.Summarize(qs), nil
}

func (s *harvestSvc) Forecast(uid string, holdingID uint, crop string) (agronomy.ForecastResult, error) {
	if err := s.owned(uid, holdingID); err != nil {
		return agronomy.ForecastResult{}, err
	}
	recs, err := s.r.Recent(holdingID, strings.ToLower(crop), agronomy.MaxHarvestSamples)
	if err != nil {
		return agronomy.ForecastResult{}, err
	}
	return agronomy.ForecastNextHarvest(recs), nil
}
