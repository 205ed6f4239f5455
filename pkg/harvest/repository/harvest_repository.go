package repository

import "agronome/entities"

type Filter struct {
	HoldingID  uint
	HoldingIDs []uint // used when HoldingID is zero
	CropType   string
	Year       int
}

type HarvestRepository interface {
	Create(h *entities.HarvestRecord) error
	// Recent returns up to limit records of one holding and crop, newest
	// (year, month) first.
	Recent(holdingID uint, crop string, limit int) ([]entities.HarvestRecord, error)
	// Find applies the non-zero filter fields.
	Find(f Filter) ([]entities.HarvestRecord, error)
}
