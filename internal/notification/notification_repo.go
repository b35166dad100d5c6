package notification

import (
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportlink/backend/pkg/logger"
)

type NotificationRepository interface {
	Create(n *Notification) error
	ListByUser(userID string, page, limit int) ([]Notification, int64, error)
	MarkRead(id, userID string) error
	// Push creates a notification best-effort: failures are logged and
	// never surfaced, so they cannot fail the triggering operation.
	Push(userID, ntype, title, message, relatedEntityID string)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) ListByUser(userID string, page, limit int) ([]Notification, int64, error) {
	var items []Notification
	var total int64

	query := r.db.Model(&Notification{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *notificationRepository) MarkRead(id, userID string) error {
	res := r.db.Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) Push(userID, ntype, title, message, relatedEntityID string) {
	if userID == "" {
		return
	}
	n := &Notification{
		UserID:          userID,
		Type:            ntype,
		Title:           truncate(title, 100),
		Message:         truncate(message, 300),
		RelatedEntityID: relatedEntityID,
	}
	if err := r.Create(n); err != nil {
		logger.Warn("notification write failed", zap.String("type", ntype), zap.Error(err))
	}
}

// truncate shortens s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
