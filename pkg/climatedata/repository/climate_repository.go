package repository

import "agronome/entities"

type ClimateRepository interface {
	Create(w *entities.ClimateWindow) error
	// Recent returns up to limit windows, newest start date first.
	Recent(holdingID uint, limit int) ([]entities.ClimateWindow, error)
}
