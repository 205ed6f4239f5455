package service

import "agronome/entities"

type HoldingService interface {
	CreateHolding(h *entities.Holding) (*entities.Holding, error)
	GetHoldingByID(id uint, uid string) (*entities.Holding, error)
	ListHoldings(uid string) ([]entities.Holding, error)
}
