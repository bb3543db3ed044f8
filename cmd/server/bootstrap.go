package main

import (
	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/handlers"
	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/internal/utils"
	"github.com/taskhive/backend/pkg/logger"
)

// appHandlers holds all initialized handlers needed by the application.
type appHandlers struct {
	authHandler   *handlers.AuthHandler
	groupHandler  *handlers.GroupHandler
	memberHandler *handlers.GroupMemberHandler
	todoHandler   *handlers.TodoHandler
	healthHandler *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database and handlers.
func bootstrap(cfg *config.Config) *appHandlers {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	return &appHandlers{
		authHandler:   handlers.NewAuthHandler(db, cfg),
		groupHandler:  handlers.NewGroupHandler(db),
		memberHandler: handlers.NewGroupMemberHandler(db),
		todoHandler:   handlers.NewTodoHandler(db),
		healthHandler: handlers.NewHealthHandler(),
	}
}
