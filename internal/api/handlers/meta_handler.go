package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apparel-insights/inventory-sim/internal/calendar"
	"github.com/apparel-insights/inventory-sim/internal/service"
)

// MetaHandler serves the informational endpoints around the simulation:
// service info, health, derived brand parameters, and the calendar tables.
type MetaHandler struct {
	service    *service.SimulationService
	dataLoaded bool
}

func NewMetaHandler(service *service.SimulationService, dataLoaded bool) *MetaHandler {
	return &MetaHandler{service: service, dataLoaded: dataLoaded}
}

func (h *MetaHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":          "Inventory Simulation API with Season & Festival Analysis",
		"version":          "2.0.1",
		"data_loaded":      h.dataLoaded,
		"brands_available": h.service.Brands(),
		"endpoints": gin.H{
			"POST /simulate":         "Run inventory simulation",
			"GET /health":            "Health check",
			"GET /brand-params":      "Get calculated brand parameters",
			"GET /seasons-festivals": "Get season and festival information",
			"GET /available-brands":  "Get available brands list",
		},
	})
}

func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "data_loaded": h.dataLoaded})
}

func (h *MetaHandler) BrandParams(c *gin.Context) {
	params := h.service.BrandParams()
	if len(params) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No historical data available"})
		return
	}
	c.JSON(http.StatusOK, params)
}

func (h *MetaHandler) SeasonsFestivals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"seasons":   calendar.Seasons(),
		"festivals": calendar.Festivals(),
	})
}

func (h *MetaHandler) AvailableBrands(c *gin.Context) {
	brands := h.service.Brands()
	if len(brands) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No historical data available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"brands":      brands,
		"count":       len(brands),
		"main_brands": brands,
	})
}
