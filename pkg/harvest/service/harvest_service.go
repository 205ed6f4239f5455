package service

import (
	"errors"
	"io"

	"agronome/entities"
	"agronome/pkg/agronomy"
	"agronome/pkg/harvest/repository"
)

var ErrIncomplete = errors.New("incomplete data")

// InvalidError reports a row that was complete but out of range.
type InvalidError struct{ Msg string }

func (e *InvalidError) Error() string { return e.Msg }

// IsInvalid is true for ErrIncomplete and *InvalidError.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.Is(err, ErrIncomplete) || errors.As(err, &ie)
}

// Row is one harvest as posted or imported.
type Row struct {
	HoldingID      uint     `json:"holding_id"`
	ParcelID       *uint    `json:"parcel_id"`
	CropType       string   `json:"crop_type"`
	Month          int      `json:"month"`
	Year           int      `json:"year"`
	Quantity       float64  `json:"quantity"`
	Unit           string   `json:"unit"`
	AreaHa         *float64 `json:"area_ha"`
	Yield          *float64 `json:"yield"`
	SalePrice      *float64 `json:"sale_price"`
	ProductionCost *float64 `json:"production_cost"`
	Quality        string   `json:"quality"`
	Notes          string   `json:"notes"`
}

type ImportResult struct {
	Imported int                      `json:"imported"`
	Errors   []string                 `json:"errors"`
	Records  []entities.HarvestRecord `json:"records"`
}

type HarvestService interface {
	Record(uid string, row Row) (*entities.HarvestRecord, error)
	Import(uid string, rows []Row) ImportResult
	ImportXLSX(uid string, r io.Reader) (ImportResult, error)
	List(uid string, f repository.Filter) ([]entities.HarvestRecord, error)
	Statistics(uid string, f repository.Filter) (agronomy.Summary, error)
	Forecast(uid string, holdingID uint, crop string) (agronomy.ForecastResult, error)
}
