package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/controllers"
	"catalog-service/database"
	"catalog-service/logger"
	"catalog-service/middleware"
	"catalog-service/repository"
	"catalog-service/routes"
	servicepkg "catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync() //nolint:errcheck

	if err := database.Connect(logger.Log); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	if cfg.SeedSampleData {
		if err := database.Seed(database.DB, logger.Log); err != nil {
			logger.Log.Fatal("Failed to seed sample data", zap.Error(err))
		}
	}

	redisClient := database.NewRedisClient(cfg.RedisURL, logger.Log)

	// DI chain
	productRepo := repository.NewGormProductRepository(database.DB)
	productService := servicepkg.NewProductService(productRepo, logger.Log)
	cacheManager := controllers.NewCacheManager(redisClient)
	productController := controllers.NewProductController(productService, cacheManager)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	// 30-second request timeout: ranking queries are expensive on large
	// corpora and cancellation propagates to the store through the
	// request context.
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "catalog-service"})
	})

	routes.RegisterCatalogRoutes(r, productController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Log.Info("Catalog service started", zap.String("port", cfg.Port))
	<-quit
	logger.Log.Info("Shutting down catalog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("Server exited cleanly")
}
