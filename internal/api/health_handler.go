package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	registry *domain.Registry
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(registry *domain.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"rules":    h.registry.Version,
		"sections": h.registry.Len(),
	})
}

// Rules handles GET /api/v1/rules
func (h *HealthHandler) Rules(c *gin.Context) {
	RespondOK(c, h.registry.RegistryInfo)
}
