package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles the author-side article and prompt endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "articles").Logger(),
	}
}

// ListMine handles GET /api/articles
func (h *ArticleHandler) ListMine(c *gin.Context) {
	articles, err := h.services.Article.ListMine(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, articles)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleInput
	if !bindJSON(c, &in) {
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, article)
}

// Get handles GET /api/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, article)
}

// Update handles PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var in models.ArticleInput
	if !bindJSON(c, &in) {
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), currentUser(c), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondSuccess(c)
}

// Publish handles POST /api/articles/:id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish handles POST /api/articles/:id/unpublish
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *ArticleHandler) setPublished(c *gin.Context, publish bool) {
	article, err := h.services.Article.SetPublished(c.Request.Context(), currentUser(c), c.Param("id"), publish)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, article)
}
