package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	providerConfigured bool
}

// NewHealthHandler creates a new HealthHandler. providerConfigured reports
// whether a provider API key was supplied at startup.
func NewHealthHandler(providerConfigured bool) *HealthHandler {
	return &HealthHandler{providerConfigured: providerConfigured}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.providerConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "provider API key not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
