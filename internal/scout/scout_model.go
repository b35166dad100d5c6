package scout

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/models"
)

// Recommendations.
const (
	RecommendationHighlyRecommend = "HighlyRecommend"
	RecommendationRecommend       = "Recommend"
	RecommendationConsider        = "Consider"
	RecommendationPass            = "Pass"
)

// ShortlistEntry is one player on one scout's shortlist. The unique
// (scout_id, player_id) pair makes add/remove conditional single
// statements.
type ShortlistEntry struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ScoutID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_shortlist_pair" json:"scoutId"`
	PlayerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_shortlist_pair" json:"playerId"`
	CreatedAt time.Time `json:"createdAt"`

	PlayerName string `gorm:"-" json:"playerName,omitempty"`
}

func (e *ShortlistEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ScoutReport is an evaluation of a player by a scout. Reports are
// queried by scoutId/playerId; there is no forward pointer on the scout
// profile to keep consistent.
type ScoutReport struct {
	ID             string             `gorm:"type:uuid;primaryKey" json:"id"`
	ScoutID        string             `gorm:"type:uuid;not null;index" json:"scoutId"`
	PlayerID       string             `gorm:"type:uuid;not null;index" json:"playerId"`
	Rating         int                `gorm:"not null" json:"rating"`
	Notes          string             `gorm:"size:2000;not null" json:"notes"`
	Recommendation string             `gorm:"not null" json:"recommendation"`
	Strengths      models.StringSlice `gorm:"type:text" json:"strengths"`
	Weaknesses     models.StringSlice `gorm:"type:text" json:"weaknesses"`
	PotentialFee   *float64           `json:"potentialFee,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func (r *ScoutReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
