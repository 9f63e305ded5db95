package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apparel-insights/inventory-sim/internal/api"
	"github.com/apparel-insights/inventory-sim/internal/cache"
	"github.com/apparel-insights/inventory-sim/internal/config"
	"github.com/apparel-insights/inventory-sim/internal/dataset"
	"github.com/apparel-insights/inventory-sim/internal/params"
	"github.com/apparel-insights/inventory-sim/internal/service"
	"github.com/apparel-insights/inventory-sim/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store := loadStore(cfg)
	brandParams := params.Estimate(store)

	simCache, err := cache.NewSimulationCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		simCache = cache.NewNoopSimulationCache()
	}

	svc := service.NewSimulationService(store, brandParams, simCache)
	router := api.NewRouter(api.Config{
		Service:        svc,
		DataLoaded:     !store.Synthetic(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

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

// loadStore prefers the database source when enabled and falls back to the
// CSV loader, which itself falls back to synthetic records.
func loadStore(cfg *config.Config) *dataset.Store {
	if cfg.Database.Enabled {
		db, err := dataset.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("database unavailable, loading CSV files instead")
		} else {
			defer db.Close()
			store, err := dataset.LoadFromDB(context.Background(), db)
			if err == nil {
				return store
			}
			logger.Log.Warn().Err(err).Msg("database load failed, loading CSV files instead")
		}
	}
	return dataset.Load(cfg.Brands)
}
