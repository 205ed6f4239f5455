package service

import (
	"time"

	"agronome/entities"
	"agronome/pkg/sensor/repository"
)

type RegisterReq struct {
	SensorID    string   `json:"sensor_id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	HoldingID   uint     `json:"holding_id"`
	ParcelID    *uint    `json:"parcel_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Active      *bool    `json:"active"`
}

// ReadingReq is one telemetry message. Value is a pointer so that 0 is a
// valid reading and a missing value is not.
type ReadingReq struct {
	SensorID   string         `json:"sensor_id"`
	SensorType string         `json:"sensor_type"`
	Value      *float64       `json:"value"`
	Unit       string         `json:"unit"`
	HoldingID  uint           `json:"holding_id"`
	ParcelID   *uint          `json:"parcel_id"`
	Latitude   *float64       `json:"latitude"`
	Longitude  *float64       `json:"longitude"`
	Timestamp  *time.Time     `json:"timestamp"`
	BatteryPct *int           `json:"battery_level"`
	SignalDBm  *int           `json:"signal_strength"`
	Metadata   map[string]any `json:"metadata"`
}

// InvalidError is a rejected request body.
type InvalidError struct{ Msg string }

func (e *InvalidError) Error() string { return e.Msg }

type SensorService interface {
	Register(uid string, req RegisterReq) (*entities.Sensor, error)
	List(uid string) ([]entities.Sensor, error)
	Ingest(req ReadingReq) (*entities.SensorReading, error)
	Recent(uid string, f repository.ReadingFilter) ([]entities.SensorReading, error)
	// SoilSnapshot folds the latest soil readings of a holding into a
	// transient analysis, nil when there are none.
	SoilSnapshot(holdingID uint) (*entities.SoilAnalysis, error)
}
