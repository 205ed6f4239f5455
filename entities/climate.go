package entities

import "time"

// ClimateWindow is an observed period, not an instant.
type ClimateWindow struct {
	WindowID    uint      `gorm:"primaryKey" json:"window_id"`
	HoldingID   uint      `gorm:"index" json:"holding_id"`
	StartDate   time.Time `gorm:"index" json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MinTempC    *float64  `json:"min_temp_c"`
	MaxTempC    *float64  `json:"max_temp_c"`
	RainfallMM  *float64  `json:"rainfall_mm"`
	PeriodLabel string    `json:"period_label"`
	CreatedAt   time.Time
}
