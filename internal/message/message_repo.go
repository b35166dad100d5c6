package message

import (
	"time"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(m *Message) error
	GetByID(id string) (*Message, error)
	Conversation(a, b string, page, limit int) ([]Message, int64, error)
	MarkRead(id string) error
	UpdateContent(id, content string) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(m *Message) error {
	return r.db.Create(m).Error
}

func (r *messageRepository) GetByID(id string) (*Message, error) {
	var m Message
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Conversation returns both directions of the pair in creation order.
func (r *messageRepository) Conversation(a, b string, page, limit int) ([]Message, int64, error) {
	query := r.db.Model(&Message{}).Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		a, b, b, a,
	)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []Message
	offset := (page - 1) * limit
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *messageRepository) MarkRead(id string) error {
	res := r.db.Model(&Message{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *messageRepository) UpdateContent(id, content string) error {
	now := time.Now()
	res := r.db.Model(&Message{}).Where("id = ?", id).Updates(map[string]interface{}{
		"content":   content,
		"edited":    true,
		"edited_at": &now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
