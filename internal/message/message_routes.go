package message

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/internal/notification"
	"github.com/sportlink/backend/internal/user"
)

// RegisterMessageRoutes mounts the direct-message endpoints.
func RegisterMessageRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewMessageRepository(db)
	users := user.NewUserRepository(db)
	notifications := notification.NewNotificationRepository(db)
	controller := NewMessageController(repo, users, notifications, cfg)

	messages := router.Group("/messages")
	messages.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		messages.POST("", controller.Send)
		messages.GET("/conversations/:userId", controller.Conversation)
		messages.PATCH("/:id/read", controller.MarkRead)
		messages.PATCH("/:id", controller.Edit)
	}
}
