package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/auth"
	"github.com/sportlink/backend/internal/club"
	"github.com/sportlink/backend/internal/message"
	"github.com/sportlink/backend/internal/notification"
	"github.com/sportlink/backend/internal/player"
	"github.com/sportlink/backend/internal/post"
	"github.com/sportlink/backend/internal/scout"
	"github.com/sportlink/backend/internal/user"
	"github.com/sportlink/backend/internal/ws"
)

// SetupRoutes builds the gin engine with every endpoint mounted.
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Websocket room relay
	ws.RegisterWSRoutes(r, db, cfg)

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, cfg)
	user.RegisterUserRoutes(api, db, cfg)
	post.RegisterPostRoutes(api, db, cfg)
	player.RegisterPlayerRoutes(api, db, cfg)
	scout.RegisterScoutRoutes(api, db, cfg)
	message.RegisterMessageRoutes(api, db, cfg)
	club.RegisterClubRoutes(api, db, cfg)
	notification.RegisterNotificationRoutes(api, db, cfg)

	return r
}
