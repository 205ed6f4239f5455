package entities

import "time"

type Sensor struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SensorID      string     `gorm:"uniqueIndex" json:"sensor_id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"` // ph|soil_moisture|nitrogen|phosphorus|potassium|temperature|...
	Description   string     `json:"description"`
	HoldingID     uint       `gorm:"index" json:"holding_id"`
	ParcelID      *uint      `json:"parcel_id"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	Disabled      bool       `json:"disabled"`
	LastReadingAt *time.Time `json:"last_reading_at"`
	BatteryPct    *int       `json:"battery_pct"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SensorReading struct {
	ReadingID  uint           `gorm:"primaryKey" json:"reading_id"`
	SensorID   string         `gorm:"index" json:"sensor_id"`
	SensorType string         `gorm:"index" json:"sensor_type"`
	Value      float64        `json:"value"`
	Unit       string         `json:"unit"`
	HoldingID  uint           `gorm:"index" json:"holding_id"`
	ParcelID   *uint          `json:"parcel_id"`
	Latitude   *float64       `json:"latitude"`
	Longitude  *float64       `json:"longitude"`
	ReadAt     time.Time      `gorm:"index" json:"read_at"`
	BatteryPct *int           `json:"battery_pct"`
	SignalDBm  *int           `json:"signal_dbm"`
	Metadata   map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt  time.Time
}
