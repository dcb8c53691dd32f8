package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

// SettingsHandler handles site settings and the admin dashboard
type SettingsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(services *service.Services, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		services: services,
		log:      log.With().Str("handler", "settings").Logger(),
	}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, settings)
}

// Update handles PUT /api/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var in models.SettingsUpdate
	if !bindJSON(c, &in) {
		return
	}

	settings, err := h.services.Settings.Update(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, settings)
}

// Stats handles GET /api/admin/stats
func (h *SettingsHandler) Stats(c *gin.Context) {
	stats, err := h.services.Dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
