package handler

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// HealthHandler exposes liveness and readiness endpoints.
// Simulations are in-process, so readiness only flips once the server starts draining.
type HealthHandler struct {
	draining atomic.Bool
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Drain marks the instance as not ready so load balancers stop sending simulations.
func (h *HealthHandler) Drain() { h.draining.Store(true) }

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness reports 503 once shutdown has begun.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.draining.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "draining"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
