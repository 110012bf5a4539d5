package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contasis-asistente/internal/domain"
)

// Handler serves the fixed domain vocabulary to the UI.
type Handler struct{}

// NewHandler creates a new catalog handler
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers catalog routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.GetCatalog)
	r.GET("/suggestions", h.GetSuggestions)
}

// GetCatalog returns the module and data source enumerations plus the
// official reference links.
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"modules":        domain.Modules(),
		"data_sources":   domain.DataSources(),
		"official_links": domain.OfficialLinks(),
	})
}

// GetSuggestions returns quick questions for the selected module.
func (h *Handler) GetSuggestions(c *gin.Context) {
	module := domain.SystemModule(c.Query("module"))
	c.JSON(http.StatusOK, gin.H{
		"suggestions": domain.SuggestionsFor(module, 3),
	})
}
