package scout

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/internal/notification"
	"github.com/sportlink/backend/internal/user"
)

// RegisterScoutRoutes mounts the scout endpoints. Shortlist management
// and report creation require the scout role; report listing is open to
// any authenticated caller.
func RegisterScoutRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewScoutRepository(db)
	users := user.NewUserRepository(db)
	notifications := notification.NewNotificationRepository(db)
	controller := NewScoutController(repo, users, notifications, cfg)

	scouts := router.Group("/scouts")
	scouts.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		shortlist := scouts.Group("/:scoutId/shortlist")
		shortlist.Use(middleware.RequireRoles(user.RoleScout))
		{
			shortlist.GET("", controller.GetShortlist)
			shortlist.POST("", controller.AddToShortlist)
			shortlist.DELETE("/:playerId", controller.RemoveFromShortlist)
		}

		scouts.POST("/reports", middleware.RequireRoles(user.RoleScout), controller.CreateReport)
		scouts.GET("/reports", controller.ListReports)
	}
}
