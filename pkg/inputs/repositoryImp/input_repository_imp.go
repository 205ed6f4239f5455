package repositoryImp

import (
	"gorm.io/gorm"

	"agronome/entities"
	"agronome/pkg/inputs/repository"
)

type inputRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.InputRepository { return &inputRepo{db} }

func (r *inputRepo) Create(in *entities.InputApplication) error { return r.db.Create(in).Error }

func (r *inputRepo) Recent(holdingID uint, limit int) ([]entities.InputApplication, error) {
	var out []entities.InputApplication
	q := r.db.Where("holding_id = ?", holdingID).Order("applied_on DESC").Order("input_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
