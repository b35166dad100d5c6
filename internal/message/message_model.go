package message

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a directional direct message. A conversation is the derived
// set of messages between two users in either direction, ordered by
// creation time.
type Message struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   string     `gorm:"type:uuid;not null;index" json:"senderId"`
	ReceiverID string     `gorm:"type:uuid;not null;index" json:"receiverId"`
	Content    string     `gorm:"size:1000;not null" json:"content"`
	Read       bool       `json:"read"`
	Edited     bool       `json:"edited"`
	EditedAt   *time.Time `json:"editedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
