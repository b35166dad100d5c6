package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
)

// RegisterNotificationRoutes mounts the notification endpoints.
func RegisterNotificationRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewNotificationRepository(db)
	controller := NewNotificationController(repo)

	notifications := router.Group("/notifications")
	notifications.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		notifications.GET("", controller.List)
		notifications.PATCH("/:id/read", controller.MarkRead)
	}
}
