package post

import (
	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/models"
)

// ListFilter narrows the feed query.
type ListFilter struct {
	AuthorID  string
	AuthorIDs []string // used by the role filter; nil means no restriction
	Page      int
	Limit     int
}

type PostRepository interface {
	Create(p *Post) error
	GetByID(id string) (*Post, error)
	List(f ListFilter) ([]Post, int64, error)
	Delete(id string) error
	ToggleLike(postID, userID string) (liked bool, err error)
	Share(postID string) error
	AddComment(cm *Comment) error
	GetComment(id string) (*Comment, error)
	LikesFor(postID string) ([]string, error)
	CommentsFor(postID string) ([]Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(p *Post) error {
	return r.db.Create(p).Error
}

func (r *postRepository) GetByID(id string) (*Post, error) {
	var p Post
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	likes, err := r.LikesFor(p.ID)
	if err != nil {
		return nil, err
	}
	comments, err := r.CommentsFor(p.ID)
	if err != nil {
		return nil, err
	}
	p.Likes = likes
	p.LikeCount = len(likes)
	p.Comments = comments
	return &p, nil
}

func (r *postRepository) List(f ListFilter) ([]Post, int64, error) {
	var posts []Post
	var total int64

	query := r.db.Model(&Post{})
	if f.AuthorID != "" {
		query = query.Where("author_id = ?", f.AuthorID)
	}
	if f.AuthorIDs != nil {
		query = query.Where("author_id IN ?", f.AuthorIDs)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	err := query.Order("created_at DESC").Offset(offset).Limit(f.Limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range posts {
		likes, err := r.LikesFor(posts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		posts[i].Likes = likes
		posts[i].LikeCount = len(likes)
	}
	return posts, total, nil
}

// Delete removes a post and cascades: comments first, then likes, then
// the post itself, in one transaction.
func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&PostLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ToggleLike removes the caller's like if present, otherwise adds it.
// Both paths are single conditional statements keyed by the unique
// (post_id, user_id) pair.
func (r *postRepository) ToggleLike(postID, userID string) (bool, error) {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	err := r.db.Create(&PostLike{PostID: postID, UserID: userID}).Error
	if err != nil {
		// A concurrent like won the insert; the caller's intent (liked)
		// already holds.
		if models.IsDuplicateKeyErr(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// Share increments the share counter unconditionally via a SQL
// expression; there is no idempotence or ownership check.
func (r *postRepository) Share(postID string) error {
	res := r.db.Model(&Post{}).
		Where("id = ?", postID).
		UpdateColumn("share_count", gorm.Expr("share_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) AddComment(cm *Comment) error {
	return r.db.Create(cm).Error
}

func (r *postRepository) GetComment(id string) (*Comment, error) {
	var cm Comment
	if err := r.db.First(&cm, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cm, nil
}

func (r *postRepository) LikesFor(postID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&PostLike{}).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *postRepository) CommentsFor(postID string) ([]Comment, error) {
	var comments []Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}
