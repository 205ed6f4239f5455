package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"agronome/entities"
	"agronome/pkg/recommendation/repository"
)

var ErrNotFound = errors.New("recommendation not found")

type recRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecommendationRepository { return &recRepo{db} }

func (r *recRepo) BulkInsert(rs []entities.Recommendation) error {
	if len(rs) == 0 {
		return nil
	}
	return r.db.Create(&rs).Error
}

func (r *recRepo) ListByHolding(holdingID uint, f repository.Filter) ([]entities.Recommendation, error) {
	var out []entities.Recommendation
	q := r.db.Where("holding_id = ?", holdingID)
	if f.ParcelID != nil {
		q = q.Where("parcel_id = ?", *f.ParcelID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if err := q.Order("created_at DESC").Order("recommendation_id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recRepo) FindByID(id uint) (*entities.Recommendation, error) {
	var rec entities.Recommendation
	err := r.db.First(&rec, "recommendation_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recRepo) PatchStatus(id uint, status string) error {
	res := r.db.Model(&entities.Recommendation{}).Where("recommendation_id = ?", id).Updates(map[string]any{"status": status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recRepo) Delete(id uint) error {
	res := r.db.Delete(&entities.Recommendation{}, "recommendation_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
