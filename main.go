package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/common/logger"
	"catalog-service/controllers"
	"catalog-service/database"
	"catalog-service/repository"
	"catalog-service/routes"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	// Initialize structured logger
	logger.Initialize(os.Getenv("ENV"))
	defer zap.L().Sync()

	// Load configuration from environment variables
	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Initialization ---

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.DBName); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, database.DB); err != nil {
		zap.L().Warn("Failed to ensure indexes", zap.Error(err))
	}
	indexCancel()

	assetStore, err := services.NewCloudinaryStore()
	if err != nil {
		zap.L().Fatal("Failed to initialize Cloudinary", zap.Error(err))
	}

	// --- 2. Dependency Injection (Wiring the layers together) ---

	productRepo := repository.NewProductRepository(database.DB)
	taxonomySet := repository.NewTaxonomySet(database.DB)
	seoRepo := repository.NewSeoRepository(database.DB)
	scanner := repository.NewReferenceScanner(database.DB)

	refValidator := services.NewReferenceValidator(taxonomySet)
	mediaResolver := services.NewMediaResolver(assetStore, services.DefaultMediaLimits())
	deletionGuard := services.NewDeletionGuard(scanner)

	productService := services.NewProductService(productRepo, taxonomySet, seoRepo, refValidator, mediaResolver, deletionGuard, assetStore)
	taxonomyService := services.NewTaxonomyService(taxonomySet, deletionGuard)
	seoService := services.NewSeoService(seoRepo, productRepo)

	requestValidator := controllers.NewRequestValidator()
	productController := controllers.NewProductController(productService, requestValidator)
	taxonomyController := controllers.NewTaxonomyController(taxonomyService, requestValidator)
	seoController := controllers.NewSeoController(seoService, requestValidator)

	// --- 3. HTTP Server & Middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	// Uploads can be slow; cap the whole request instead of a per-call timeout.
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- 4. Route Registration ---

	routes.RegisterRoutes(r, productController, taxonomyController, seoController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Catalog Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Catalog Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		zap.L().Error("Failed to disconnect from MongoDB", zap.Error(err))
	}

	zap.L().Info("Catalog Service stopped gracefully")
}
