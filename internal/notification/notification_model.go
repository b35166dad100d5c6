package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types.
const (
	TypeLike           = "like"
	TypeComment        = "comment"
	TypeMessage        = "message"
	TypeScoutReport    = "scout_report"
	TypeClubInvitation = "club_invitation"
)

// Notification is a creation-only record; there is no update tracking.
type Notification struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"type:uuid;not null;index" json:"userId"`
	Type            string    `gorm:"not null" json:"type"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	Message         string    `gorm:"size:300;not null" json:"message"`
	Read            bool      `json:"read"`
	RelatedEntityID string    `json:"relatedEntityId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
