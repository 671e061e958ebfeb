package main

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/listify/internal/config"
	"github.com/yukikurage/listify/internal/database"
	"github.com/yukikurage/listify/internal/handlers"
	"github.com/yukikurage/listify/internal/logging"
	"github.com/yukikurage/listify/internal/middleware"
	"github.com/yukikurage/listify/internal/repository"
	"github.com/yukikurage/listify/internal/services"
	"github.com/yukikurage/listify/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	shell, err := loadShell(cfg.StaticDir)
	if err != nil {
		logger.Error("failed to load shell page", "dir", cfg.StaticDir, "error", err)
		os.Exit(1)
	}

	// Initialize services and handlers
	userRepo := repository.NewUserRepository(database.GetDB())
	authService := services.NewAuthService(userRepo, cfg.BcryptCost)
	authHandler := handlers.NewAuthHandler(authService, logger)
	shellHandler := handlers.NewShellHandler(shell)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	handlers.RegisterRoutes(r, authHandler, shellHandler, authService)

	// Start server
	logger.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadShell reads index.html from dir, falling back to the embedded page.
func loadShell(dir string) ([]byte, error) {
	if dir == "" {
		return web.IndexHTML, nil
	}
	return os.ReadFile(filepath.Join(dir, "index.html"))
}
