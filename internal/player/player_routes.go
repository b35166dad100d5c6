package player

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
)

// RegisterPlayerRoutes mounts the player endpoints. All routes require
// auth; stat/status mutations are additionally owner-gated in the
// controller.
func RegisterPlayerRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewPlayerRepository(db)
	controller := NewPlayerController(repo, cfg)

	players := router.Group("/players")
	players.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		players.GET("/search", controller.Search)
		players.GET("/trending", controller.Trending)
		players.GET("/:id/stats", controller.GetStats)
		players.PATCH("/:id/stats", controller.UpdateStats)
		players.GET("/:id/status", controller.GetStatus)
		players.PATCH("/:id/status", controller.UpdateStatus)
	}
}
