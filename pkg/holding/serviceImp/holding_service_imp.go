package serviceImp

import (
	"errors"
	"strings"

	"agronome/entities"
	repo "agronome/pkg/holding/repository"
	"agronome/pkg/holding/service"
)

type holdingSvc struct{ r repo.HoldingRepository }

func NewHoldingService(r repo.HoldingRepository) service.HoldingService { return &holdingSvc{r} }

func (s *holdingSvc) CreateHolding(h *entities.Holding) (*entities.Holding, error) {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return nil, errors.New("name is required")
	}
	if h.AreaHa < 0 {
		return nil, errors.New("area_ha must be >= 0")
	}
	if (h.Latitude == nil) != (h.Longitude == nil) {
		return nil, errors.New("latitude and longitude go together")
	}
	if h.Latitude != nil && (*h.Latitude < -90 || *h.Latitude > 90 || *h.Longitude < -180 || *h.Longitude > 180) {
		return nil, errors.New("coordinates out of range")
	}
	h.MainCrop = strings.ToLower(strings.TrimSpace(h.MainCrop))
	if err := s.r.Create(h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *holdingSvc) GetHoldingByID(id uint, uid string) (*entities.Holding, error) {
	return s.r.FindByID(id, uid)
}

func (s *holdingSvc) ListHoldings(uid string) ([]entities.Holding, error) {
	return s.r.List(uid)
}
