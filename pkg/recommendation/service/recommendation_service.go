package service

import (
	"context"
	"errors"

	"agronome/entities"
	"agronome/pkg/recommendation/repository"
)

var ErrInvalidStatus = errors.New("status must be one of new, acknowledged, applied, dismissed")

// Batch is the result of one generation run.
type Batch struct {
	BatchID         string                    `json:"batch_id"`
	HoldingID       uint                      `json:"holding_id"`
	Recommendations []entities.Recommendation `json:"recommendations"`
	References      []entities.ArticleRef     `json:"references"`
}

// SoilSnapshotter folds live sensor readings into a soil analysis.
// It returns nil when the holding has no usable readings.
type SoilSnapshotter interface {
	SoilSnapshot(holdingID uint) (*entities.SoilAnalysis, error)
}

// Referencer finds knowledge-base articles for a set of categories.
type Referencer interface {
	References(tags []string, k int) ([]entities.ArticleRef, error)
}

type RecommendationService interface {
	Generate(holdingID uint) (*Batch, error)
	// GenerateAll regenerates every holding and returns how many failed.
	GenerateAll(ctx context.Context) (int, error)
	List(holdingID uint, f repository.Filter) ([]entities.Recommendation, error)
	Get(uid string, id uint) (*entities.Recommendation, error)
	SetStatus(uid string, id uint, status string) (*entities.Recommendation, error)
	Delete(uid string, id uint) error
}
