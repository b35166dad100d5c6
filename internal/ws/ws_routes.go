package ws

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/pkg/responses"
)

// RegisterWSRoutes mounts the room relay endpoint and starts the hub.
// Browsers cannot set headers on websocket requests, so the middleware
// also accepts the token as a query parameter.
func RegisterWSRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) *Hub {
	hub := NewHub()
	go hub.Run()

	router.GET("/ws/rooms/:room", middleware.Auth(cfg.JWT.Secret, db), func(c *gin.Context) {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			responses.Unauthorized(c, "Access token required")
			return
		}
		room := c.Param("room")
		if room == "" {
			responses.BadRequest(c, "Room name is required")
			return
		}
		hub.Serve(c.Writer, c.Request, userID, room)
	})
	return hub
}
