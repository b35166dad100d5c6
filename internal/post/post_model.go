package post

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/models"
)

// Media types.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// UnknownAuthor is rendered when a post or comment author no longer
// resolves to a user (account deletion does not cascade).
const UnknownAuthor = "Unknown User"

// MediaItem is one attachment on a post.
type MediaItem struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"sizeBytes"`
}

// MediaList is a JSON column of media items.
type MediaList []MediaItem

func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		m = MediaList{}
	}
	return json.Marshal(m)
}

func (m *MediaList) Scan(src interface{}) error {
	return models.ScanJSON(src, m)
}

// Post is a feed entry. Likes live in post_likes (one row per user) and
// comments in their own table, both queried at read time.
type Post struct {
	ID         string             `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID   string             `gorm:"type:uuid;not null;index" json:"authorId"`
	Content    string             `gorm:"size:2000;not null" json:"content"`
	Media      MediaList          `gorm:"type:text" json:"media"`
	Tags       models.StringSlice `gorm:"type:text" json:"tags"`
	ShareCount int                `gorm:"not null;default:0" json:"shareCount"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`

	AuthorName string    `gorm:"-" json:"authorName,omitempty"`
	Likes      []string  `gorm:"-" json:"likes"`
	LikeCount  int       `gorm:"-" json:"likeCount"`
	Comments   []Comment `gorm:"-" json:"comments,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostLike is one user's like on one post. The unique pair makes the
// like toggle a conditional insert/delete instead of read-modify-write.
type PostLike struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_like" json:"postId"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_like" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Comment belongs to exactly one post and is only ever exposed inside
// that post's comment list.
type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"postId"`
	AuthorID  string    `gorm:"type:uuid;not null" json:"authorId"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AuthorName string `gorm:"-" json:"authorName,omitempty"`
}

func (cm *Comment) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}
	return nil
}
