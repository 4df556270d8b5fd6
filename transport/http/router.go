package http

import (
	"github.com/gin-gonic/gin"
	"github.com/launchblock/cerberus/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService) *gin.Engine {
	router := gin.Default()
	router.Use(MetricsMiddleware())

	// Create handlers
	handlers := NewAuthHandlers(authService)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.GET("/session", handlers.Session)
		auth.POST("/logout", handlers.Logout)
	}

	// Admin-gated API routes. The site's CRUD mutations live in their own
	// services and guard themselves the same way, through RequireAdmin.
	api := router.Group("/api")
	api.Use(SessionGuard(authService))
	{
		api.GET("/me", handlers.Me)
		api.GET("/authorize", handlers.Authorize)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
