package repositoryImp

import (
	"gorm.io/gorm"

	"agronome/entities"
	"agronome/pkg/climatedata/repository"
)

type climateRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ClimateRepository { return &climateRepo{db} }

func (r *climateRepo) Create(w *entities.ClimateWindow) error { return r.db.Create(w).Error }

func (r *climateRepo) Recent(holdingID uint, limit int) ([]entities.ClimateWindow, error) {
	var out []entities.ClimateWindow
	q := r.db.Where("holding_id = ?", holdingID).Order("start_date DESC").Order("window_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
