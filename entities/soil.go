package entities

import "time"

// SoilAnalysis is one lab or field sample. Every measurement is optional.
type SoilAnalysis struct {
	AnalysisID     uint      `gorm:"primaryKey" json:"analysis_id"`
	HoldingID      uint      `gorm:"index" json:"holding_id"`
	ParcelID       *uint     `gorm:"index" json:"parcel_id"`
	SampleDate     time.Time `gorm:"index" json:"sample_date"`
	PH             *float64  `json:"ph"`
	MoisturePct    *float64  `json:"moisture_pct"`
	Texture        string    `json:"texture"` // sandy|loam|clay|...
	NitrogenMgKg   *float64  `json:"nitrogen_mg_kg"`
	PhosphorusMgKg *float64  `json:"phosphorus_mg_kg"`
	PotassiumMgKg  *float64  `json:"potassium_mg_kg"`
	Observations   string    `json:"observations"`
	CreatedAt      time.Time
}

// HasNPK is true when all three macro-nutrients were measured.
func (s *SoilAnalysis) HasNPK() bool {
	return s.NitrogenMgKg != nil && s.PhosphorusMgKg != nil && s.PotassiumMgKg != nil
}
