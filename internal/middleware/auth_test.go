package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sportlink/backend/pkg/token"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE users (id TEXT PRIMARY KEY, role TEXT)`).Error)
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, id, role string) string {
	t.Helper()
	require.NoError(t, db.Exec(`INSERT INTO users (id, role) VALUES (?, ?)`, id, role).Error)
	bearer, err := token.Generate(id, testSecret, 1)
	require.NoError(t, err)
	return bearer
}

func newAuthedRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	whoami := func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		role, _ := CurrentUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	}

	r.GET("/private", Auth(testSecret, db), whoami)
	r.GET("/scouts-only", Auth(testSecret, db), RequireRoles("scout"), whoami)
	r.GET("/open", OptionalAuth(testSecret, db), func(c *gin.Context) {
		id, err := CurrentUserID(c)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func get(r *gin.Engine, path, bearer, queryToken string) *httptest.ResponseRecorder {
	target := path
	if queryToken != "" {
		target += "?token=" + queryToken
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_AcceptsHeaderAndQueryToken(t *testing.T) {
	db := newTestDB(t)
	r := newAuthedRouter(db)
	bearer := seedAccount(t, db, "user-1", "player")

	w := get(r, "/private", bearer, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")

	// Query parameter form, used by websocket upgrades.
	w = get(r, "/private", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
}

func TestAuth_RejectsMissingAndBadTokens(t *testing.T) {
	db := newTestDB(t)
	r := newAuthedRouter(db)

	w := get(r, "/private", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Access token required")

	w = get(r, "/private", "garbage", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid token")

	// A valid signature for an account that no longer exists.
	orphan, err := token.Generate("deleted-user", testSecret, 1)
	require.NoError(t, err)
	w = get(r, "/private", orphan, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	db := newTestDB(t)
	r := newAuthedRouter(db)
	scout := seedAccount(t, db, "scout-1", "scout")
	player := seedAccount(t, db, "player-1", "player")

	w := get(r, "/scouts-only", scout, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/scouts-only", player, "")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "You don't have permission to access this resource")
}

func TestOptionalAuth_NeverFails(t *testing.T) {
	db := newTestDB(t)
	r := newAuthedRouter(db)
	bearer := seedAccount(t, db, "user-1", "player")

	w := get(r, "/open", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "anonymous")

	w = get(r, "/open", "garbage", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "anonymous")

	w = get(r, "/open", bearer, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
}
