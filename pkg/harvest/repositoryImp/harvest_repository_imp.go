package repositoryImp

import (
	"gorm.io/gorm"

	"agronome/entities"
	"agronome/pkg/harvest/repository"
)

type harvestRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HarvestRepository { return &harvestRepo{db} }

func (r *harvestRepo) Create(h *entities.HarvestRecord) error { return r.db.Create(h).Error }

func (r *harvestRepo) Recent(holdingID uint, crop string, limit int) ([]entities.HarvestRecord, error) {
	var out []entities.HarvestRecord
	err := r.db.Where("holding_id = ? AND crop_type = ?", holdingID, crop).
		Order("year DESC").Order("month DESC").Order("harvest_id DESC").
		Limit(limit).Find(&out).Error
	return out, err
}

func (r *harvestRepo) Find(f repository.Filter) ([]entities.HarvestRecord, error) {
	q := r.db.Model(&entities.HarvestRecord{})
	if f.HoldingID != 0 {
		q = q.Where("holding_id = ?", f.HoldingID)
	} else if f.HoldingIDs != nil {
		q = q.Where("holding_id IN ?", f.HoldingIDs)
	}
	if f.CropType != "" {
		q = q.Where("crop_type = ?", f.CropType)
	}
	if f.Year != 0 {
		q = q.Where("year = ?", f.Year)
	}
	var out []entities.HarvestRecord
	err := q.Order("year DESC").Order("month DESC").Find(&out).Error
	return out, err
}
