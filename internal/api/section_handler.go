package api

import (
	"github.com/gin-gonic/gin"

	"github.com/taxdesk/tds-calculator/internal/calculation"
	"github.com/taxdesk/tds-calculator/internal/domain"
)

// SectionHandler serves the section catalog.
type SectionHandler struct {
	registry *domain.Registry
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(registry *domain.Registry) *SectionHandler {
	return &SectionHandler{registry: registry}
}

// List handles GET /api/v1/sections?q=
func (h *SectionHandler) List(c *gin.Context) {
	RespondOK(c, calculation.SearchCatalog(h.registry, c.Query("q")))
}

// Get handles GET /api/v1/sections/:code
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.registry.Lookup(c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, calculation.DescribeSection(section))
}
