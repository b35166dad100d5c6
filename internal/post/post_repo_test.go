package post

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Post{}, &PostLike{}, &Comment{}))
	return db
}

func seedPost(t *testing.T, repo PostRepository, authorID, content string) *Post {
	t.Helper()
	p := &Post{AuthorID: authorID, Content: content}
	require.NoError(t, repo.Create(p))
	return p
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := uuid.NewString()

	p := seedPost(t, repo, author, "First training session done")

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, author, got.AuthorID)
	require.Empty(t, got.Likes)
	require.Zero(t, got.LikeCount)
	require.Zero(t, got.ShareCount)
}

func TestPostRepository_ToggleLike(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	p := seedPost(t, repo, uuid.NewString(), "content")
	liker := uuid.NewString()

	liked, err := repo.ToggleLike(p.ID, liker)
	require.NoError(t, err)
	require.True(t, liked)

	likes, err := repo.LikesFor(p.ID)
	require.NoError(t, err)
	require.Equal(t, []string{liker}, likes)

	// Second toggle removes the like again.
	liked, err = repo.ToggleLike(p.ID, liker)
	require.NoError(t, err)
	require.False(t, liked)

	likes, err = repo.LikesFor(p.ID)
	require.NoError(t, err)
	require.Empty(t, likes)
}

func TestPostRepository_LikesAreDistinctPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	p := seedPost(t, repo, uuid.NewString(), "content")

	a, b := uuid.NewString(), uuid.NewString()
	_, err := repo.ToggleLike(p.ID, a)
	require.NoError(t, err)
	_, err = repo.ToggleLike(p.ID, b)
	require.NoError(t, err)

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.LikeCount)
}

func TestPostRepository_ShareIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	p := seedPost(t, repo, uuid.NewString(), "content")

	require.NoError(t, repo.Share(p.ID))
	require.NoError(t, repo.Share(p.ID))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.ShareCount)

	require.ErrorIs(t, repo.Share("missing-id"), gorm.ErrRecordNotFound)
}

func TestPostRepository_Comments(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	p := seedPost(t, repo, uuid.NewString(), "content")
	author := uuid.NewString()

	first := &Comment{PostID: p.ID, AuthorID: author, Content: "nice one"}
	require.NoError(t, repo.AddComment(first))
	second := &Comment{PostID: p.ID, AuthorID: author, Content: "well played"}
	require.NoError(t, repo.AddComment(second))

	comments, err := repo.CommentsFor(p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	p := seedPost(t, repo, uuid.NewString(), "content")

	cm := &Comment{PostID: p.ID, AuthorID: uuid.NewString(), Content: "gone soon"}
	require.NoError(t, repo.AddComment(cm))
	_, err := repo.ToggleLike(p.ID, uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(p.ID))

	_, err = repo.GetByID(p.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetComment(cm.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var likes int64
	require.NoError(t, db.Model(&PostLike{}).Where("post_id = ?", p.ID).Count(&likes).Error)
	require.Zero(t, likes)

	require.ErrorIs(t, repo.Delete(p.ID), gorm.ErrRecordNotFound)
}

func TestPostRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	alice, bob := uuid.NewString(), uuid.NewString()

	seedPost(t, repo, alice, "post a1")
	seedPost(t, repo, alice, "post a2")
	seedPost(t, repo, bob, "post b1")

	all, total, err := repo.List(ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, all, 3)

	byAuthor, total, err := repo.List(ListFilter{AuthorID: alice, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, byAuthor, 2)

	// An empty (non-nil) id set matches nothing; this is how a role
	// filter with no members behaves.
	none, total, err := repo.List(ListFilter{AuthorIDs: []string{}, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, none)

	subset, total, err := repo.List(ListFilter{AuthorIDs: []string{bob}, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, bob, subset[0].AuthorID)
}
