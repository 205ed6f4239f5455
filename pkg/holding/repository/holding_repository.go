package repository

import "agronome/entities"

type HoldingRepository interface {
	Create(h *entities.Holding) error
	// FindByID returns holding.ErrNotFound when the holding does not exist or
	// belongs to another user.
	FindByID(id uint, uid string) (*entities.Holding, error)
	List(uid string) ([]entities.Holding, error)
	ListAll() ([]entities.Holding, error)
}
