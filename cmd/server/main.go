package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trendora/trendora-backend/config"
	"github.com/trendora/trendora-backend/internal/app/controller"
	"github.com/trendora/trendora-backend/internal/app/repository"
	"github.com/trendora/trendora-backend/internal/app/service"
	"github.com/trendora/trendora-backend/internal/db"
	"github.com/trendora/trendora-backend/internal/middleware"
	"github.com/trendora/trendora-backend/internal/router"
	"github.com/trendora/trendora-backend/internal/storage"
	"github.com/trendora/trendora-backend/pkg/logger"
	"github.com/trendora/trendora-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // "json" for production
		EnableColor: true,
	})

	logger.Info("Starting TRENDORA Catalog Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs rate limiting only; the catalog stays up without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, wishlistRepo, cfg.Pagination, cfg.Catalog)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)

	// Initialize media storage
	s3Storage := storage.NewS3Storage(&cfg.S3)

	// Initialize controllers
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService)
	reviewController := controller.NewReviewController(reviewService)
	wishlistController := controller.NewWishlistController(wishlistService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		categoryController,
		productController,
		reviewController,
		wishlistController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
