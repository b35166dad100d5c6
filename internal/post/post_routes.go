package post

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/internal/notification"
	"github.com/sportlink/backend/internal/user"
)

// RegisterPostRoutes mounts the post endpoints. All routes require auth.
func RegisterPostRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewPostRepository(db)
	users := user.NewUserRepository(db)
	notifications := notification.NewNotificationRepository(db)
	controller := NewPostController(repo, users, notifications, cfg)

	posts := router.Group("/posts")
	posts.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		posts.GET("", controller.List)
		posts.POST("", controller.Create)
		posts.GET("/:id", controller.GetByID)
		posts.DELETE("/:id", controller.Delete)
		posts.POST("/:id/like", controller.Like)
		posts.POST("/:id/share", controller.Share)
		posts.POST("/:id/comments", controller.AddComment)
	}
}
