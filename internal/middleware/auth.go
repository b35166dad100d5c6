package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/pkg/responses"
	"github.com/sportlink/backend/pkg/token"
)

const (
	ContextUserIDKey   = "userID"
	ContextUserRoleKey = "userRole"
)

// Auth enforces bearer-token authentication. On success the resolved
// user id and role are attached to the request context.
func Auth(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			responses.Unauthorized(c, "Access token required")
			return
		}
		if jwtSecret == "" {
			responses.InternalServerError(c, "")
			return
		}

		userID, err := token.Verify(tokenString, jwtSecret)
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				responses.Unauthorized(c, "Token has expired")
				return
			}
			responses.Unauthorized(c, "Invalid token")
			return
		}

		role, err := lookupRole(db, userID)
		if err != nil {
			responses.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserRoleKey, role)
		c.Next()
	}
}

// OptionalAuth performs the same resolution as Auth but never fails: on
// any error the request proceeds anonymously.
func OptionalAuth(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" || jwtSecret == "" {
			c.Next()
			return
		}
		userID, err := token.Verify(tokenString, jwtSecret)
		if err != nil {
			c.Next()
			return
		}
		role, err := lookupRole(db, userID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserRoleKey, role)
		c.Next()
	}
}

// RequireRoles allows only callers whose role is in the given set. Must
// run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentUserRole(c)
		if !ok {
			responses.Unauthorized(c, "Access token required")
			return
		}
		for _, required := range roles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, responses.Envelope{
			Success: false,
			Error:   "You don't have permission to access this resource",
		})
	}
}

// CurrentUserID retrieves the authenticated user's id from the context.
func CurrentUserID(c *gin.Context) (string, error) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	id, ok := v.(string)
	if !ok {
		return "", errors.New("user ID in context is not a string")
	}
	return id, nil
}

// CurrentUserRole retrieves the authenticated user's role from the context.
func CurrentUserRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

func lookupRole(db *gorm.DB, userID string) (string, error) {
	var role string
	err := db.Table("users").Select("role").Where("id = ?", userID).Scan(&role).Error
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

// extractToken pulls the bearer token from the Authorization header, or
// from the "token" query parameter for websocket upgrades.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}
