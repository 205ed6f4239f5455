package entities

import "time"

const (
	RecStatusNew          = "new"
	RecStatusAcknowledged = "acknowledged"
	RecStatusApplied      = "applied"
	RecStatusDismissed    = "dismissed"
)

type Recommendation struct {
	RecommendationID uint           `gorm:"primaryKey" json:"recommendation_id"`
	HoldingID        uint           `gorm:"index" json:"holding_id"`
	ParcelID         *uint          `gorm:"index" json:"parcel_id"`
	BatchID          string         `gorm:"index" json:"batch_id"`
	Category         string         `json:"category"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Params           map[string]any `gorm:"serializer:json" json:"parameters_used"`
	Priority         string         `json:"priority"` // low|medium|high
	Status           string         `gorm:"index" json:"status"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidRecStatus reports whether s is one of the lifecycle states.
func ValidRecStatus(s string) bool {
	switch s {
	case RecStatusNew, RecStatusAcknowledged, RecStatusApplied, RecStatusDismissed:
		return true
	}
	return false
}

type ArticleRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
