package repository

import "agronome/entities"

// Filter narrows ListByHolding. Zero values mean "any".
type Filter struct {
	ParcelID *uint
	Status   string
}

type RecommendationRepository interface {
	BulkInsert(rs []entities.Recommendation) error
	// ListByHolding returns newest first.
	ListByHolding(holdingID uint, f Filter) ([]entities.Recommendation, error)
	FindByID(id uint) (*entities.Recommendation, error)
	PatchStatus(id uint, status string) error
	Delete(id uint) error
}
