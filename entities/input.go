package entities

import "time"

type InputApplication struct {
	InputID     uint      `gorm:"primaryKey" json:"input_id"`
	HoldingID   uint      `gorm:"index" json:"holding_id"`
	ParcelID    *uint     `gorm:"index" json:"parcel_id"`
	InputType   string    `json:"input_type"` // fertilizer|pesticide|seed|amendment
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	AppliedOn   time.Time `gorm:"index" json:"applied_on"`
	Crop        string    `json:"crop"`
	CreatedAt   time.Time
}
