package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"agronome/entities"
	"agronome/pkg/holding"
	"agronome/pkg/holding/repository"
)

type holdingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HoldingRepository { return &holdingRepo{db} }

func (r *holdingRepo) Create(h *entities.Holding) error { return r.db.Create(h).Error }

func (r *holdingRepo) FindByID(id uint, uid string) (*entities.Holding, error) {
	var h entities.Holding
	if err := r.db.Where("holding_id = ? AND user_id = ?", id, uid).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, holding.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *holdingRepo) List(uid string) ([]entities.Holding, error) {
	var out []entities.Holding
	err := r.db.Where("user_id = ?", uid).Order("holding_id ASC").Find(&out).Error
	return out, err
}

func (r *holdingRepo) ListAll() ([]entities.Holding, error) {
	var out []entities.Holding
	err := r.db.Order("holding_id ASC").Find(&out).Error
	return out, err
}
