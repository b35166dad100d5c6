package club

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/internal/notification"
	"github.com/sportlink/backend/internal/user"
)

// RegisterClubRoutes mounts the club join-request and event endpoints.
func RegisterClubRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewClubRepository(db)
	users := user.NewUserRepository(db)
	notifications := notification.NewNotificationRepository(db)
	controller := NewClubController(repo, users, notifications, cfg)

	clubs := router.Group("/clubs")
	clubs.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		clubs.POST("/:clubId/join-requests", controller.CreateJoinRequest)
		clubs.GET("/:clubId/events", controller.ListClubEvents)

		owner := clubs.Group("/:clubId")
		owner.Use(middleware.RequireRoles(user.RoleClub))
		{
			owner.GET("/join-requests", controller.ListJoinRequests)
			owner.PATCH("/join-requests/:id/approve", controller.ApproveJoinRequest)
			owner.PATCH("/join-requests/:id/reject", controller.RejectJoinRequest)
			owner.POST("/events", controller.CreateEvent)
		}
	}

	events := router.Group("/events")
	events.Use(middleware.Auth(cfg.JWT.Secret, db))
	{
		events.GET("", controller.ListEvents)
		events.POST("/:id/join", controller.JoinEvent)
		events.PATCH("/:id/status", controller.UpdateEventStatus)
	}
}
