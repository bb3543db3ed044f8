package main

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, h *appHandlers) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.CORS.AllowOrigins))

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", h.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", h.authHandler.Register)
			auth.POST("/login", h.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", h.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", h.authHandler.Logout)

			// Groups
			protected.GET("/groups", h.groupHandler.List)
			protected.POST("/groups", h.groupHandler.Create)
			protected.GET("/groups/:id", h.groupHandler.GetByID)
			protected.PUT("/groups/:id", h.groupHandler.Update)
			protected.DELETE("/groups/:id", h.groupHandler.Delete)

			// Group members
			protected.POST("/groups/:id/invite", h.memberHandler.Invite)
			protected.PUT("/groups/:id/members/:memberId", h.memberHandler.UpdateRole)
			protected.DELETE("/groups/:id/members/:memberId", h.memberHandler.Remove)

			// Todos
			protected.GET("/todos", h.todoHandler.List)
			protected.POST("/todos", h.todoHandler.Create)
			protected.GET("/todos/:id", h.todoHandler.GetByID)
			protected.PUT("/todos/:id", h.todoHandler.Update)
			protected.DELETE("/todos/:id", h.todoHandler.Delete)
		}
	}
}
