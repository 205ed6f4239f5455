package repository

import "agronome/entities"

type InputRepository interface {
	Create(in *entities.InputApplication) error
	// Recent returns up to limit applications, most recently applied first.
	Recent(holdingID uint, limit int) ([]entities.InputApplication, error)
}
