package api

import (
	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /api/admin/export?resource=...&format=...
// Streams the export directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	resource := c.DefaultQuery("resource", "articles")
	format := c.DefaultQuery("format", "ndjson")

	h.log.Info().
		Str("resource", resource).
		Str("format", format).
		Msg("Starting streaming export")

	if err := h.services.Export.StreamResource(c.Request.Context(), c.Writer, resource, format); err != nil {
		// Can't return error JSON after streaming has started
		if c.Writer.Written() {
			h.log.Error().Err(err).Str("resource", resource).Msg("Export failed")
			return
		}
		respondError(c, h.log, err)
	}
}
