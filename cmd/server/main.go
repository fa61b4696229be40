// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prasetyowira/stockcast/backend-go/internal/api"
	"github.com/prasetyowira/stockcast/backend-go/internal/cache"
	"github.com/prasetyowira/stockcast/backend-go/internal/config"
	"github.com/prasetyowira/stockcast/backend-go/internal/repository/postgres"
	"github.com/prasetyowira/stockcast/backend-go/internal/service"
	"github.com/prasetyowira/stockcast/backend-go/internal/storage"
	"github.com/prasetyowira/stockcast/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize forecast cache; fall back to a noop cache so the server
	// still serves when redis is down.
	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("forecast cache unavailable, continuing without cache")
		forecastCache = cache.NewNoopForecastCache()
	}

	// Object storage is optional; exports are disabled without it.
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		objectStorage, err = storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, exports disabled")
			objectStorage = nil
		}
	}

	// Initialize repositories
	demandRepo := postgres.NewDemandRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	ruleRepo := postgres.NewRuleRepository(db)
	poRepo := postgres.NewPORepository(db)

	// Initialize services
	forecastService := service.NewForecastService(demandRepo, catalogRepo, forecastCache)
	reorderService := service.NewReorderService(demandRepo, catalogRepo, ruleRepo, poRepo, objectStorage, service.ReorderServiceConfig{
		ServiceLevel:        cfg.Reorder.ServiceLevel,
		DefaultLeadTimeDays: cfg.Reorder.DefaultLeadTimeDays,
		MaxStockMultiplier:  cfg.Reorder.MaxStockMultiplier,
	})

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		ForecastService: forecastService,
		ReorderService:  reorderService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
