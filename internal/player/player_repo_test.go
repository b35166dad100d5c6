package player

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sportlink/backend/internal/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &user.PlayerProfile{}, &user.ScoutProfile{},
		&user.CoachProfile{}, &user.ClubProfile{},
	))
	return db
}

func seedPlayer(t *testing.T, db *gorm.DB, name, sport, position string, stats user.PlayerStats) *user.User {
	t.Helper()
	users := user.NewUserRepository(db)
	u := &user.User{
		Name:     name,
		Email:    fmt.Sprintf("%s_%d@example.com", name, time.Now().UnixNano()),
		Password: "hashed",
		Role:     user.RolePlayer,
	}
	require.NoError(t, users.Create(u))
	require.NoError(t, db.Model(&user.PlayerProfile{}).Where("user_id = ?", u.ID).Updates(map[string]interface{}{
		"sport":        sport,
		"position":     position,
		"stat_matches": stats.Matches,
		"stat_goals":   stats.Goals,
		"stat_assists": stats.Assists,
	}).Error)
	return u
}

func TestPlayerRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)

	seedPlayer(t, db, "Ana", "Football", "Forward", user.PlayerStats{})
	seedPlayer(t, db, "Ben", "Football", "Goalkeeper", user.PlayerStats{})
	seedPlayer(t, db, "Cleo", "Basketball", "Guard", user.PlayerStats{})

	bySport, total, err := repo.Search(SearchQuery{Sport: "foot", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, bySport, 2)

	byPosition, total, err := repo.Search(SearchQuery{Sport: "FOOTBALL", Position: "forward", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Ana", byPosition[0].Name)

	byStatus, total, err := repo.Search(SearchQuery{Status: user.StatusFreeAgent, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, byStatus, 3)
}

func TestPlayerRepository_TrendingOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)

	seedPlayer(t, db, "LowScorer", "Football", "Mid", user.PlayerStats{Matches: 10, Goals: 2, Assists: 9})
	seedPlayer(t, db, "TopScorer", "Football", "Forward", user.PlayerStats{Matches: 10, Goals: 15, Assists: 1})
	seedPlayer(t, db, "Playmaker", "Football", "Mid", user.PlayerStats{Matches: 10, Goals: 2, Assists: 12})

	trending, err := repo.Trending(2)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	require.Equal(t, "TopScorer", trending[0].Name)
	// Equal goals fall back to assists.
	require.Equal(t, "Playmaker", trending[1].Name)
}

func TestPlayerRepository_UpdateStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)
	u := seedPlayer(t, db, "Ana", "Football", "Forward", user.PlayerStats{Matches: 5, Goals: 3, Assists: 2})

	goals := 7
	require.NoError(t, repo.UpdateStats(u.ID, StatsUpdate{Goals: &goals}))

	p, err := repo.GetProfile(u.ID)
	require.NoError(t, err)
	require.Equal(t, 7, p.Stats.Goals)
	// Untouched fields keep their values.
	require.Equal(t, 5, p.Stats.Matches)
	require.Equal(t, 2, p.Stats.Assists)

	require.ErrorIs(t, repo.UpdateStats("missing-id", StatsUpdate{Goals: &goals}), gorm.ErrRecordNotFound)
}

func TestPlayerRepository_StatusTransitions(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)
	u := seedPlayer(t, db, "Ana", "Football", "Forward", user.PlayerStats{})

	require.NoError(t, repo.UpdateStatus(u.ID, user.StatusSigned, "club-1", "FC North"))
	p, err := repo.GetProfile(u.ID)
	require.NoError(t, err)
	require.Equal(t, user.StatusSigned, p.Status)
	require.Equal(t, "club-1", p.ClubID)
	require.Equal(t, "FC North", p.ClubName)

	// Leaving Signed clears the club fields even if the caller sends them.
	require.NoError(t, repo.UpdateStatus(u.ID, user.StatusFreeAgent, "club-1", "FC North"))
	p, err = repo.GetProfile(u.ID)
	require.NoError(t, err)
	require.Equal(t, user.StatusFreeAgent, p.Status)
	require.Empty(t, p.ClubID)
	require.Empty(t, p.ClubName)
}
