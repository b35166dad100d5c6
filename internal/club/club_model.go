package club

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/models"
)

// Join-request statuses.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Event types.
const (
	EventMatch      = "match"
	EventTraining   = "training"
	EventMeeting    = "meeting"
	EventTournament = "tournament"
	EventTrial      = "trial"
)

// Event statuses.
const (
	EventScheduled = "scheduled"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// ValidEventStatus reports whether s is an allowed event status.
func ValidEventStatus(s string) bool {
	switch s {
	case EventScheduled, EventOngoing, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// JoinRequest asks a club to admit a user. The unique (club_id, user_id)
// pair allows at most one request per user per club. pending is the only
// non-terminal status; processing stamps ProcessedDate and ProcessedBy
// exactly once.
type JoinRequest struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	ClubID        string     `gorm:"type:uuid;not null;uniqueIndex:idx_join_request_pair" json:"clubId"`
	UserID        string     `gorm:"type:uuid;not null;uniqueIndex:idx_join_request_pair" json:"userId"`
	Status        string     `gorm:"not null;default:pending" json:"status"`
	Message       string     `gorm:"size:500" json:"message,omitempty"`
	RequestDate   time.Time  `json:"requestDate"`
	ProcessedDate *time.Time `json:"processedDate,omitempty"`
	ProcessedBy   string     `json:"processedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (j *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = RequestPending
	}
	if j.RequestDate.IsZero() {
		j.RequestDate = time.Now()
	}
	return nil
}

// Event is a club-organized activity.
type Event struct {
	ID           string             `gorm:"type:uuid;primaryKey" json:"id"`
	ClubID       string             `gorm:"type:uuid;not null;index" json:"clubId"`
	Title        string             `gorm:"size:200;not null" json:"title"`
	Date         time.Time          `gorm:"not null" json:"date"`
	Type         string             `gorm:"not null" json:"type"`
	Description  string             `gorm:"size:2000" json:"description"`
	Location     string             `gorm:"size:200" json:"location,omitempty"`
	Participants models.StringSlice `gorm:"type:text" json:"participants"`
	Status       string             `gorm:"not null;default:scheduled" json:"status"`
	CreatedBy    string             `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = EventScheduled
	}
	return nil
}
