package repository

import "agronome/entities"

type SoilRepository interface {
	Create(a *entities.SoilAnalysis) error
	// ListByHolding returns every analysis of the holding, newest sample first.
	ListByHolding(holdingID uint) ([]entities.SoilAnalysis, error)
	ListByParcel(holdingID, parcelID uint) ([]entities.SoilAnalysis, error)
}
