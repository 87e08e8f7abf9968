package api

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
)

// MetricsHandler serves process metrics and the health summary
type MetricsHandler struct {
	metrics *metrics.Metrics
	enabled bool
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(collector *metrics.Metrics, enabled bool) *MetricsHandler {
	return &MetricsHandler{metrics: collector, enabled: enabled}
}

// HandleGetMetrics returns all metrics
func (h *MetricsHandler) HandleGetMetrics(c *gin.Context) {
	all := h.metrics.GetAllMetrics()
	all["goroutines"] = runtime.NumGoroutine()
	c.JSON(http.StatusOK, all)
}

// HandleGetHealthCheck returns a simplified health status
func (h *MetricsHandler) HandleGetHealthCheck(c *gin.Context) {
	healthChecks := h.metrics.GetHealthChecks()

	healthy := true
	for _, status := range healthChecks {
		if !status {
			healthy = false
			break
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":  healthy,
		"details": healthChecks,
	})
}

// RegisterRoutes registers the handler's routes
func (h *MetricsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HandleGetHealthCheck)
	if h.enabled {
		router.GET("/metrics", h.HandleGetMetrics)
	}
}
