package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/apparel-insights/inventory-sim/internal/service"
	"github.com/apparel-insights/inventory-sim/internal/simulation"
)

type SimulationHandler struct {
	service *service.SimulationService
}

func NewSimulationHandler(service *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{service: service}
}

// Simulate runs one simulation request. An invalid window is the client's
// fault; anything else that fails mid-run is a server error.
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req service.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.service.Run(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, simulation.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		log.Error().Err(err).Msg("simulation request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Simulation error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
