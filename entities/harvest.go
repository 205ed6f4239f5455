package entities

import "time"

type HarvestRecord struct {
	HarvestID      uint     `gorm:"primaryKey" json:"harvest_id"`
	HoldingID      uint     `gorm:"index" json:"holding_id"`
	ParcelID       *uint    `json:"parcel_id"`
	CropType       string   `gorm:"index" json:"crop_type"`
	Month          int      `json:"month"` // 1-12
	Year           int      `gorm:"index" json:"year"`
	Quantity       float64  `json:"quantity"`
	Unit           string   `json:"unit"`
	AreaHa         *float64 `json:"area_ha"`
	Yield          *float64 `json:"yield"`
	SalePrice      *float64 `json:"sale_price"`
	ProductionCost *float64 `json:"production_cost"`
	Quality        string   `json:"quality"` // excellent|good|average|poor
	Notes          string   `json:"notes"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveYield fills Yield from quantity/area. A supplied yield is kept as is,
// and a zero or missing area leaves it unset.
func (h *HarvestRecord) DeriveYield() {
	if h.Yield != nil || h.AreaHa == nil || *h.AreaHa <= 0 {
		return
	}
	y := h.Quantity / *h.AreaHa
	h.Yield = &y
}
