package repositoryImp

import (
	"gorm.io/gorm"

	"agronome/entities"
	"agronome/pkg/soil/repository"
)

type soilRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilRepository { return &soilRepo{db} }

func (r *soilRepo) Create(a *entities.SoilAnalysis) error { return r.db.Create(a).Error }

func (r *soilRepo) ListByHolding(holdingID uint) ([]entities.SoilAnalysis, error) {
	var out []entities.SoilAnalysis
	err := r.db.Where("holding_id = ?", holdingID).
		Order("sample_date DESC").Order("analysis_id DESC").
		Find(&out).Error
	return out, err
}

func (r *soilRepo) ListByParcel(holdingID, parcelID uint) ([]entities.SoilAnalysis, error) {
	var out []entities.SoilAnalysis
	err := r.db.Where("holding_id = ? AND parcel_id = ?", holdingID, parcelID).
		Order("sample_date DESC").Order("analysis_id DESC").
		Find(&out).Error
	return out, err
}
