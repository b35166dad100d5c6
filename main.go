package main

import (
	"log"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/club"
	"github.com/sportlink/backend/internal/message"
	"github.com/sportlink/backend/internal/notification"
	"github.com/sportlink/backend/internal/post"
	"github.com/sportlink/backend/internal/scout"
	"github.com/sportlink/backend/internal/user"
	"github.com/sportlink/backend/pkg/logger"
	"github.com/sportlink/backend/routes"
)

// @title SportLink REST API
// @version 1.0
// @description Backend for the SportLink sports-networking platform.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.App.Env)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&user.User{}, &user.PlayerProfile{}, &user.ScoutProfile{},
		&user.CoachProfile{}, &user.ClubProfile{},
		&post.Post{}, &post.PostLike{}, &post.Comment{},
		&message.Message{},
		&scout.ShortlistEntry{}, &scout.ScoutReport{},
		&club.JoinRequest{}, &club.Event{},
		&notification.Notification{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(db, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
