package repository

import (
	"time"

	"agronome/entities"
)

// ReadingFilter narrows Recent. HoldingIDs, when non-nil, restricts results
// to those holdings.
type ReadingFilter struct {
	SensorID   string
	SensorType string
	HoldingID  uint
	HoldingIDs []uint
	Limit      int
}

type SensorRepository interface {
	CreateSensor(s *entities.Sensor) error
	// FindSensor returns sensor.ErrUnknownSensor when nothing matches.
	FindSensor(sensorID string) (*entities.Sensor, error)
	ListSensors(holdingIDs []uint) ([]entities.Sensor, error)
	Touch(sensorID string, at time.Time, battery *int) error

	CreateReading(r *entities.SensorReading) error
	// Recent returns newest first.
	Recent(f ReadingFilter) ([]entities.SensorReading, error)
	// Latest returns the newest reading of each type for a holding.
	Latest(holdingID uint, types []string) (map[string]entities.SensorReading, error)
}
