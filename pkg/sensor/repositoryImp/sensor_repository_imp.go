package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"agronome/entities"
	"agronome/pkg/sensor"
	"agronome/pkg/sensor/repository"
)

const defaultLimit = 100

type sensorRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SensorRepository { return &sensorRepo{db} }

func (r *sensorRepo) CreateSensor(s *entities.Sensor) error { return r.db.Create(s).Error }

func (r *sensorRepo) FindSensor(sensorID string) (*entities.Sensor, error) {
	var s entities.Sensor
	err := r.db.Where("sensor_id = ?", sensorID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, sensor.ErrUnknownSensor
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sensorRepo) ListSensors(holdingIDs []uint) ([]entities.Sensor, error) {
	var out []entities.Sensor
	if len(holdingIDs) == 0 {
		return out, nil
	}
	if err := r.db.Where("holding_id IN ?", holdingIDs).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sensorRepo) Touch(sensorID string, at time.Time, battery *int) error {
	upd := map[string]any{"last_reading_at": at}
	if battery != nil {
		upd["battery_pct"] = *battery
	}
	return r.db.Model(&entities.Sensor{}).Where("sensor_id = ?", sensorID).Updates(upd).Error
}

func (r *sensorRepo) CreateReading(m *entities.SensorReading) error { return r.db.Create(m).Error }

func (r *sensorRepo) Recent(f repository.ReadingFilter) ([]entities.SensorReading, error) {
	var out []entities.SensorReading
	q := r.db.Model(&entities.SensorReading{})
	if f.SensorID != "" {
		q = q.Where("sensor_id = ?", f.SensorID)
	}
	if f.SensorType != "" {
		q = q.Where("sensor_type = ?", f.SensorType)
	}
	if f.HoldingID != 0 {
		q = q.Where("holding_id = ?", f.HoldingID)
	}
	if f.HoldingIDs != nil {
		if len(f.HoldingIDs) == 0 {
			return out, nil
		}
		q = q.Where("holding_id IN ?", f.HoldingIDs)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if err := q.Order("read_at DESC").Order("reading_id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sensorRepo) Latest(holdingID uint, types []string) (map[string]entities.SensorReading, error) {
	out := map[string]entities.SensorReading{}
	for _, t := range types {
		var m entities.SensorReading
		err := r.db.Where("holding_id = ? AND sensor_type = ?", holdingID, t).
			Order("read_at DESC").Order("reading_id DESC").First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[t] = m
	}
	return out, nil
}
