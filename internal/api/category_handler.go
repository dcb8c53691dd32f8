package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(services *service.Services, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		services: services,
		log:      log.With().Str("handler", "categories").Logger(),
	}
}

// List handles GET /api/categories
// ?with_counts=true adds the number of published articles per category
func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if withCounts, _ := strconv.ParseBool(c.Query("with_counts")); withCounts {
		categories, err := h.services.Category.ListWithCounts(ctx)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		respondData(c, http.StatusOK, categories)
		return
	}

	categories, err := h.services.Category.List(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, categories)
}

// GetBySlug handles GET /api/categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.services.Category.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var in models.CategoryInput
	if !bindJSON(c, &in) {
		return
	}

	category, err := h.services.Category.Create(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, category)
}

// Update handles PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var in models.CategoryInput
	if !bindJSON(c, &in) {
		return
	}

	category, err := h.services.Category.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.services.Category.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondSuccess(c)
}

// TagHandler handles tag endpoints
type TagHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(services *service.Services, log zerolog.Logger) *TagHandler {
	return &TagHandler{
		services: services,
		log:      log.With().Str("handler", "tags").Logger(),
	}
}

// List handles GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.services.Tag.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, tags)
}

// Create handles POST /api/tags
func (h *TagHandler) Create(c *gin.Context) {
	var in models.TagInput
	if !bindJSON(c, &in) {
		return
	}

	tag, err := h.services.Tag.Create(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, tag)
}

// Update handles PUT /api/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	var in models.TagInput
	if !bindJSON(c, &in) {
		return
	}

	tag, err := h.services.Tag.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, tag)
}

// Delete handles DELETE /api/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.services.Tag.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondSuccess(c)
}
