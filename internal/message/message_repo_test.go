package message

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
	require.NoError(t, db.AutoMigrate(&Message{}))
	return db
}

func send(t *testing.T, repo MessageRepository, from, to, content string) *Message {
	t.Helper()
	m := &Message{SenderID: from, ReceiverID: to, Content: content}
	require.NoError(t, repo.Create(m))
	return m
}

func TestMessageRepository_ConversationCoversBothDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	alice, bob, carol := uuid.NewString(), uuid.NewString(), uuid.NewString()

	send(t, repo, alice, bob, "hi bob")
	send(t, repo, bob, alice, "hi alice")
	send(t, repo, alice, bob, "got a minute?")
	send(t, repo, alice, carol, "unrelated thread")

	msgs, total, err := repo.Conversation(alice, bob, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, msgs, 3)
	require.Equal(t, "hi bob", msgs[0].Content)
	require.Equal(t, "hi alice", msgs[1].Content)
	require.Equal(t, "got a minute?", msgs[2].Content)

	// The pair is symmetric.
	fromBob, total, err := repo.Conversation(bob, alice, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Equal(t, msgs[0].ID, fromBob[0].ID)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	m := send(t, repo, uuid.NewString(), uuid.NewString(), "ping")

	require.False(t, m.Read)
	require.NoError(t, repo.MarkRead(m.ID))

	got, err := repo.GetByID(m.ID)
	require.NoError(t, err)
	require.True(t, got.Read)

	require.ErrorIs(t, repo.MarkRead("missing-id"), gorm.ErrRecordNotFound)
}

func TestMessageRepository_UpdateContentTracksEdit(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	m := send(t, repo, uuid.NewString(), uuid.NewString(), "draft")

	require.NoError(t, repo.UpdateContent(m.ID, "final wording"))

	got, err := repo.GetByID(m.ID)
	require.NoError(t, err)
	require.Equal(t, "final wording", got.Content)
	require.True(t, got.Edited)
	require.NotNil(t, got.EditedAt)

	require.ErrorIs(t, repo.UpdateContent("missing-id", "x"), gorm.ErrRecordNotFound)
}
