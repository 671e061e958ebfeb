package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/listify/internal/middleware"
)

// RegisterRoutes mounts the API, the health check and the browser shell on r.
func RegisterRoutes(r *gin.Engine, authHandler *AuthHandler, shellHandler *ShellHandler, verifier middleware.TokenVerifier) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Listify API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify", authHandler.Verify)
			auth.GET("/me", middleware.RequireToken(verifier), authHandler.GetCurrentUser)
		}
	}

	r.GET("/", shellHandler.Index)
	r.NoRoute(shellHandler.NotFound)
}
