package user

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sportlink/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&User{}, &PlayerProfile{}, &ScoutProfile{}, &CoachProfile{}, &ClubProfile{},
	))
	return db
}

func seedUser(t *testing.T, repo UserRepository, name, email, role string) *User {
	t.Helper()
	u := &User{Name: name, Email: email, Password: "hashed", Role: role}
	require.NoError(t, repo.Create(u))
	return u
}

func TestUserRepository_CreateBuildsMatchingProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	player := seedUser(t, repo, "Leo", "leo@example.com", RolePlayer)
	club := seedUser(t, repo, "FC North", "north@example.com", RoleClub)

	got, err := repo.GetByID(player.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Player)
	require.Equal(t, StatusFreeAgent, got.Player.Status)
	require.Nil(t, got.Scout)
	require.Nil(t, got.Coach)
	require.Nil(t, got.Club)

	got, err = repo.GetByID(club.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Club)
	require.Equal(t, "FC North", got.Club.Name)
	require.Nil(t, got.Player)
}

func TestUserRepository_CreateRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	err := repo.Create(&User{Name: "X", Email: "x@example.com", Password: "h", Role: "referee"})
	require.Error(t, err)

	// The transaction must roll back the user row too.
	taken, err := repo.EmailTaken("x@example.com")
	require.NoError(t, err)
	require.False(t, taken)
}

func TestUserRepository_EmailUniqueAndCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, repo, "Leo", "leo@example.com", RolePlayer)

	taken, err := repo.EmailTaken("LEO@Example.COM")
	require.NoError(t, err)
	require.True(t, taken)

	err = repo.Create(&User{Name: "Leo2", Email: "Leo@Example.com", Password: "h", Role: RoleScout})
	require.True(t, models.IsDuplicateKeyErr(err))

	got, err := repo.GetByEmail("LEO@EXAMPLE.COM")
	require.NoError(t, err)
	require.Equal(t, "Leo", got.Name)
}

func TestUserRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, repo, "Leo Messi", "leo@example.com", RolePlayer)
	seedUser(t, repo, "Jane Scout", "jane@example.com", RoleScout)
	seedUser(t, repo, "Leon Keeper", "leon@example.com", RolePlayer)

	byName, total, err := repo.Search(SearchQuery{Query: "leo", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, byName, 2)

	byRole, total, err := repo.Search(SearchQuery{Query: "leo", Role: RolePlayer, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, u := range byRole {
		require.Equal(t, RolePlayer, u.Role)
	}

	none, total, err := repo.Search(SearchQuery{Query: "nobody", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, none)
}

func TestUserRepository_SearchByLocation(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seeded := seedUser(t, repo, "FC North", "north@example.com", RoleClub)
	club, err := repo.GetByID(seeded.ID)
	require.NoError(t, err)
	club.Club.Location = "Manchester"
	require.NoError(t, repo.Update(club))
	seedUser(t, repo, "FC South", "south@example.com", RoleClub)

	found, total, err := repo.Search(SearchQuery{Location: "manch", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, club.ID, found[0].ID)

	// Combining filters still yields each user once; the profile joins
	// are one-to-one and must not duplicate rows.
	combined, total, err := repo.Search(SearchQuery{Query: "north", Role: RoleClub, Location: "manch", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, combined, 1)
}

func TestUserRepository_UpdatePersistsProfileChanges(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seeded := seedUser(t, repo, "Leo", "leo@example.com", RolePlayer)
	u, err := repo.GetByID(seeded.ID)
	require.NoError(t, err)
	u.Name = "Leo M"
	u.Player.Sport = "Football"
	u.Player.Position = "Forward"
	require.NoError(t, repo.Update(u))

	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	require.Equal(t, "Leo M", got.Name)
	require.Equal(t, "Football", got.Player.Sport)
	require.Equal(t, "Forward", got.Player.Position)
}

func TestUserRepository_DeleteRemovesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	u := seedUser(t, repo, "Leo", "leo@example.com", RolePlayer)
	require.NoError(t, repo.Delete(u.ID))

	_, err := repo.GetByID(u.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&PlayerProfile{}).Where("user_id = ?", u.ID).Count(&count).Error)
	require.Zero(t, count)

	require.ErrorIs(t, repo.Delete(u.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository_LookupHelpers(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	player := seedUser(t, repo, "Leo", "leo@example.com", RolePlayer)
	scout := seedUser(t, repo, "Jane", "jane@example.com", RoleScout)

	ids, err := repo.IDsByRole(RolePlayer)
	require.NoError(t, err)
	require.Equal(t, []string{player.ID}, ids)

	names, err := repo.NamesByID([]string{player.ID, scout.ID, "missing-id"})
	require.NoError(t, err)
	require.Len(t, names, 2)
	require.Equal(t, "Leo", names[player.ID])

	exists, err := repo.Exists(player.ID)
	require.NoError(t, err)
	require.True(t, exists)

	isPlayer, err := repo.ExistsWithRole(scout.ID, RolePlayer)
	require.NoError(t, err)
	require.False(t, isPlayer)
}

func TestNewProfileFor_BranchesMatchRole(t *testing.T) {
	for _, role := range []string{RolePlayer, RoleScout, RoleCoach, RoleClub} {
		profile := NewProfileFor(&User{ID: "u1", Name: "N", Role: role})
		require.NotNil(t, profile, role)
		typeName := fmt.Sprintf("%T", profile)
		require.True(t, strings.Contains(strings.ToLower(typeName), role), typeName)
	}
	require.Nil(t, NewProfileFor(&User{ID: "u1", Role: "referee"}))
}
