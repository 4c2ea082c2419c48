// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// StatsProvider defines the interface for getting coverage statistics.
type StatsProvider interface {
	SystemStats(ctx context.Context) model.SystemStats
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsProvider.SystemStats(c.Request.Context()))
}
