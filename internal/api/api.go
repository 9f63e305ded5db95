package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/apparel-insights/inventory-sim/internal/api/handlers"
	"github.com/apparel-insights/inventory-sim/internal/api/middleware"
	"github.com/apparel-insights/inventory-sim/internal/service"
)

// Config wires the router's collaborators.
type Config struct {
	Service        *service.SimulationService
	DataLoaded     bool
	AllowedOrigins []string
}

func NewRouter(cfg Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	meta := handlers.NewMetaHandler(cfg.Service, cfg.DataLoaded)
	router.GET("/", meta.Root)
	router.GET("/health", meta.Health)
	router.GET("/brand-params", meta.BrandParams)
	router.GET("/seasons-festivals", meta.SeasonsFestivals)
	router.GET("/available-brands", meta.AvailableBrands)

	sim := handlers.NewSimulationHandler(cfg.Service)
	router.POST("/simulate", sim.Simulate)

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
