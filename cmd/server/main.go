package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmercado/tienda-backend/config"
	"github.com/jmercado/tienda-backend/internal/app/controller"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/internal/app/service"
	"github.com/jmercado/tienda-backend/internal/db"
	"github.com/jmercado/tienda-backend/internal/router"
	"github.com/jmercado/tienda-backend/internal/scheduler"
	"github.com/jmercado/tienda-backend/internal/storage"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"github.com/jmercado/tienda-backend/pkg/redis"
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
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Tienda Backend Server", map[string]interface{}{
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

	// Redis is optional; without it config reads skip the cache
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	saleRepo := repository.NewSaleRepository(db.GetDB())
	priceRuleRepo := repository.NewPriceRuleRepository(db.GetDB())
	configRepo := repository.NewConfigRepository(db.GetDB())

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(saleRepo, db.GetDB())
	priceRuleService := service.NewPriceRuleService(priceRuleRepo, productRepo)
	configService := service.NewConfigService(configRepo, redis.GetClient())

	// Image hosting collaborator
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService)
	saleController := controller.NewSaleController(saleService)
	productController := controller.NewProductController(productService)
	priceRuleController := controller.NewPriceRuleController(priceRuleService)
	configController := controller.NewConfigController(configService)
	uploadController := controller.NewUploadController(s3Storage)

	// Start the price rule sweep
	priceRuleScheduler := scheduler.NewPriceRuleScheduler(priceRuleService)
	if err := priceRuleScheduler.Start(); err != nil {
		logger.Fatal("Failed to start price rule scheduler", err)
	}
	defer priceRuleScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		catalogController,
		saleController,
		productController,
		priceRuleController,
		configController,
		uploadController,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	// Drain in-flight requests before letting the deferred closers run
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown after drain timeout", err)
	}

	logger.Info("Server stopped successfully")
}
