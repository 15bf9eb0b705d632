// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/ai"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/api"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/cache"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/metrics"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/repository"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/service"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/summary"
	"github.com/andresuchdata/aurora-inventory/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Setup(cfg.Server.Mode)
	if cfg.Server.LogLevel != "" {
		logger.SetLevel(cfg.Server.LogLevel)
	}
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	warehouseRepo, err := repository.NewWarehouseRepository(db, cfg.Warehouse)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Invalid warehouse configuration")
	}

	optionsCache, err := cache.NewFilterOptionsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Filter options cache unavailable, continuing without cache")
		optionsCache = cache.NewNoopFilterOptionsCache()
	}

	m := metrics.New()
	summarizer := summary.NewSummarizer(
		newGenerator(cfg.AI),
		summary.WithPromptLimit(cfg.Report.PromptLimit),
		summary.WithTimeout(cfg.AI.Timeout()),
		summary.WithRecorder(m),
	)

	inventoryService := service.NewInventoryService(warehouseRepo, optionsCache, summarizer, service.Options{
		TopN:        cfg.Report.TopN,
		HealthTable: cfg.Warehouse.HealthTable,
		Metrics:     m,
	})

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		InventoryService: inventoryService,
		Metrics:          m,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// newGenerator returns the OpenAI generator, or a disabled one when AI is
// switched off or no key is configured. Summaries then always use the fallback.
func newGenerator(cfg config.AIConfig) ai.Generator {
	if !cfg.Enabled || cfg.APIKey == "" {
		logger.Log.Info().Msg("AI summaries disabled; using deterministic fallback")
		return ai.Disabled{}
	}
	return ai.NewOpenAIGenerator(ai.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
}
