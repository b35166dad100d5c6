package club

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/models"
)

var (
	// ErrDuplicateRequest is returned when a user already has a request
	// for the club.
	ErrDuplicateRequest = errors.New("join request already exists")
	// ErrAlreadyProcessed is returned when a non-pending request is
	// processed again.
	ErrAlreadyProcessed = errors.New("join request already processed")
	// ErrAlreadyParticipating is returned when a user joins an event
	// twice.
	ErrAlreadyParticipating = errors.New("already participating in event")
)

// EventFilter narrows an event listing.
type EventFilter struct {
	ClubID string
	Status string
	Page   int
	Limit  int
}

type ClubRepository interface {
	CreateJoinRequest(j *JoinRequest) error
	GetJoinRequest(id string) (*JoinRequest, error)
	ListJoinRequests(clubID, status string) ([]JoinRequest, error)
	ProcessJoinRequest(id, newStatus, actorID string) error
	CreateEvent(e *Event) error
	GetEvent(id string) (*Event, error)
	ListEvents(f EventFilter) ([]Event, int64, error)
	JoinEvent(id, userID string) error
	UpdateEventStatus(id, status string) error
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new instance of ClubRepository.
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) CreateJoinRequest(j *JoinRequest) error {
	err := r.db.Create(j).Error
	if err != nil && models.IsDuplicateKeyErr(err) {
		return ErrDuplicateRequest
	}
	return err
}

func (r *clubRepository) GetJoinRequest(id string) (*JoinRequest, error) {
	var j JoinRequest
	if err := r.db.First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *clubRepository) ListJoinRequests(clubID, status string) ([]JoinRequest, error) {
	query := r.db.Where("club_id = ?", clubID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []JoinRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ProcessJoinRequest moves a pending request to a terminal status. The
// conditional WHERE makes the transition exactly-once; a request that is
// no longer pending reports ErrAlreadyProcessed.
func (r *clubRepository) ProcessJoinRequest(id, newStatus, actorID string) error {
	now := time.Now()
	res := r.db.Model(&JoinRequest{}).
		Where("id = ? AND status = ?", id, RequestPending).
		Updates(map[string]interface{}{
			"status":         newStatus,
			"processed_date": &now,
			"processed_by":   actorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&JoinRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrAlreadyProcessed
	}
	return nil
}

func (r *clubRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *clubRepository) GetEvent(id string) (*Event, error) {
	var e Event
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *clubRepository) ListEvents(f EventFilter) ([]Event, int64, error) {
	query := r.db.Model(&Event{})
	if f.ClubID != "" {
		query = query.Where("club_id = ?", f.ClubID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	offset := (f.Page - 1) * f.Limit
	err := query.Order("date ASC").Offset(offset).Limit(f.Limit).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *clubRepository) JoinEvent(id, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var e Event
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			return err
		}
		if e.Participants.Contains(userID) {
			return ErrAlreadyParticipating
		}
		e.Participants = append(e.Participants, userID)
		return tx.Model(&e).Update("participants", e.Participants).Error
	})
}

func (r *clubRepository) UpdateEventStatus(id, status string) error {
	res := r.db.Model(&Event{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
