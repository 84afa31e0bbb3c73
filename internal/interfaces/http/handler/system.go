package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/attcrm/backend/internal/infrastructure/logger"
	"github.com/attcrm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the root banner, health checks and metrics
type SystemHandler struct {
	store       Pinger
	pingTimeout time.Duration
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(store Pinger) *SystemHandler {
	return &SystemHandler{
		store:       store,
		pingTimeout: 2 * time.Second,
	}
}

// Root handles GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok", Message: "ATT CRM API"})
}

// Health handles GET /health; 503 when the store does not answer
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	now := time.Now().Format(time.RFC3339)
	if err := h.store.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: "unhealthy", Store: "error", Time: now})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "healthy", Store: "ok", Time: now})
}

// Metrics returns the Prometheus exposition handler for registry
func Metrics(registry *prometheus.Registry) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}
