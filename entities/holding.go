package entities

import "time"

type Holding struct {
	HoldingID uint     `gorm:"primaryKey" json:"holding_id"`
	UserID    string   `json:"user_id" gorm:"index"`
	Name      string   `json:"name"`
	AreaHa    float64  `json:"area_ha"`
	MainCrop  string   `json:"main_crop"` // maize|rice|cotton|cassava|yam|tomato|bean
	Region    string   `json:"region"`
	District  string   `json:"district"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCoordinates reports whether weather can be fetched for the holding.
func (h *Holding) HasCoordinates() bool { return h.Latitude != nil && h.Longitude != nil }
