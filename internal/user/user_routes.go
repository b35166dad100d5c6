package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
)

// RegisterUserRoutes mounts the user endpoints. All routes require auth.
func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewUserRepository(db)
	controller := NewUserController(repo, cfg)

	users := router.Group("/users")
	users.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		users.GET("/me", controller.GetMe)
		users.GET("", controller.Search)
		users.GET("/:id", controller.GetByID)
		users.PATCH("/:id", controller.Update)
		users.DELETE("/:id", controller.Delete)
	}
}
