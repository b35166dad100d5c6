package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/user"
)

// RegisterAuthRoutes mounts the public auth endpoints.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	users := user.NewUserRepository(db)
	controller := NewAuthController(users, cfg)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/verify-token", controller.VerifyToken)
	}
}
