package club

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
	require.NoError(t, db.AutoMigrate(&JoinRequest{}, &Event{}))
	return db
}

func TestClubRepository_JoinRequestUniquePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	clubID, userID := uuid.NewString(), uuid.NewString()

	first := &JoinRequest{ClubID: clubID, UserID: userID, Message: "let me in"}
	require.NoError(t, repo.CreateJoinRequest(first))
	require.Equal(t, RequestPending, first.Status)
	require.False(t, first.RequestDate.IsZero())

	dup := &JoinRequest{ClubID: clubID, UserID: userID}
	require.ErrorIs(t, repo.CreateJoinRequest(dup), ErrDuplicateRequest)

	// The same user may still ask a different club.
	other := &JoinRequest{ClubID: uuid.NewString(), UserID: userID}
	require.NoError(t, repo.CreateJoinRequest(other))
}

func TestClubRepository_ProcessJoinRequestExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	clubID := uuid.NewString()

	j := &JoinRequest{ClubID: clubID, UserID: uuid.NewString()}
	require.NoError(t, repo.CreateJoinRequest(j))

	require.NoError(t, repo.ProcessJoinRequest(j.ID, RequestApproved, clubID))

	got, err := repo.GetJoinRequest(j.ID)
	require.NoError(t, err)
	require.Equal(t, RequestApproved, got.Status)
	require.NotNil(t, got.ProcessedDate)
	require.Equal(t, clubID, got.ProcessedBy)

	// A second transition, approve or reject, is refused.
	require.ErrorIs(t, repo.ProcessJoinRequest(j.ID, RequestRejected, clubID), ErrAlreadyProcessed)
	require.ErrorIs(t, repo.ProcessJoinRequest(j.ID, RequestApproved, clubID), ErrAlreadyProcessed)

	require.ErrorIs(t, repo.ProcessJoinRequest("missing-id", RequestApproved, clubID), gorm.ErrRecordNotFound)
}

func TestClubRepository_ListJoinRequestsByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	clubID := uuid.NewString()

	pending := &JoinRequest{ClubID: clubID, UserID: uuid.NewString()}
	require.NoError(t, repo.CreateJoinRequest(pending))
	approved := &JoinRequest{ClubID: clubID, UserID: uuid.NewString()}
	require.NoError(t, repo.CreateJoinRequest(approved))
	require.NoError(t, repo.ProcessJoinRequest(approved.ID, RequestApproved, clubID))
	// Another club's request stays out of scope.
	require.NoError(t, repo.CreateJoinRequest(&JoinRequest{ClubID: uuid.NewString(), UserID: uuid.NewString()}))

	all, err := repo.ListJoinRequests(clubID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	onlyPending, err := repo.ListJoinRequests(clubID, RequestPending)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	require.Equal(t, pending.ID, onlyPending[0].ID)
}

func seedEvent(t *testing.T, repo ClubRepository, clubID string, date time.Time) *Event {
	t.Helper()
	e := &Event{
		ClubID:    clubID,
		Title:     "Open trial",
		Date:      date,
		Type:      EventTrial,
		CreatedBy: clubID,
	}
	require.NoError(t, repo.CreateEvent(e))
	return e
}

func TestClubRepository_EventListing(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	clubID := uuid.NewString()
	now := time.Now()

	later := seedEvent(t, repo, clubID, now.Add(48*time.Hour))
	sooner := seedEvent(t, repo, clubID, now.Add(24*time.Hour))
	foreign := seedEvent(t, repo, uuid.NewString(), now.Add(24*time.Hour))

	byClub, total, err := repo.ListEvents(EventFilter{ClubID: clubID, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, sooner.ID, byClub[0].ID)
	require.Equal(t, later.ID, byClub[1].ID)

	require.NoError(t, repo.UpdateEventStatus(foreign.ID, EventCancelled))
	cancelled, total, err := repo.ListEvents(EventFilter{Status: EventCancelled, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, foreign.ID, cancelled[0].ID)
}

func TestClubRepository_JoinEventOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	e := seedEvent(t, repo, uuid.NewString(), time.Now().Add(24*time.Hour))
	userID := uuid.NewString()

	require.NoError(t, repo.JoinEvent(e.ID, userID))
	require.ErrorIs(t, repo.JoinEvent(e.ID, userID), ErrAlreadyParticipating)

	got, err := repo.GetEvent(e.ID)
	require.NoError(t, err)
	require.Len(t, got.Participants, 1)
	require.True(t, got.Participants.Contains(userID))

	require.ErrorIs(t, repo.JoinEvent("missing-id", userID), gorm.ErrRecordNotFound)
}

func TestClubRepository_UpdateEventStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	e := seedEvent(t, repo, uuid.NewString(), time.Now())

	require.Equal(t, EventScheduled, e.Status)
	require.NoError(t, repo.UpdateEventStatus(e.ID, EventOngoing))

	got, err := repo.GetEvent(e.ID)
	require.NoError(t, err)
	require.Equal(t, EventOngoing, got.Status)

	require.ErrorIs(t, repo.UpdateEventStatus("missing-id", EventCompleted), gorm.ErrRecordNotFound)
}
