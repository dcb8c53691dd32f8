package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

const fingerprintHeader = "X-Fingerprint"

// PublicHandler serves published content to anonymous readers
type PublicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(services *service.Services, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		services: services,
		log:      log.With().Str("handler", "public").Logger(),
	}
}

// List handles GET /api/public/articles?category=<slug>&author=<id>
func (h *PublicHandler) List(c *gin.Context) {
	articles, err := h.services.Article.ListPublished(c.Request.Context(), c.Query("category"), c.Query("author"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, articles)
}

// GetBySlug handles GET /api/public/articles/:slug
func (h *PublicHandler) GetBySlug(c *gin.Context) {
	article, err := h.services.Article.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, article)
}

// Related handles GET /api/public/articles/:slug/related
func (h *PublicHandler) Related(c *gin.Context) {
	articles, err := h.services.Article.Related(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, articles)
}

// Search handles GET /api/public/search?q=...
func (h *PublicHandler) Search(c *gin.Context) {
	articles, err := h.services.Article.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, articles)
}

// Authors handles GET /api/public/authors
func (h *PublicHandler) Authors(c *gin.Context) {
	authors, err := h.services.Article.Authors(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, authors)
}

// ReactionHandler handles anonymous likes and ratings
type ReactionHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(services *service.Services, log zerolog.Logger) *ReactionHandler {
	return &ReactionHandler{
		services: services,
		log:      log.With().Str("handler", "reactions").Logger(),
	}
}

// LikeInfo handles GET /api/public/likes/:id
func (h *ReactionHandler) LikeInfo(c *gin.Context) {
	info, err := h.services.Like.Info(c.Request.Context(), c.Param("id"), fingerprint(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, info)
}

// ToggleLike handles POST /api/public/likes/:id
func (h *ReactionHandler) ToggleLike(c *gin.Context) {
	info, err := h.services.Like.Toggle(c.Request.Context(), c.Param("id"), fingerprint(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, info)
}

// Rate handles POST /api/public/ratings/:id
func (h *ReactionHandler) Rate(c *gin.Context) {
	var in models.RatingInput
	if !bindJSON(c, &in) {
		return
	}

	rating, err := h.services.Rating.Rate(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, rating)
}

// ListRatings handles GET /api/public/ratings/:id
func (h *ReactionHandler) ListRatings(c *gin.Context) {
	ratings, err := h.services.Rating.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, ratings)
}

// RatingSummary handles GET /api/public/ratings/:id/summary
func (h *ReactionHandler) RatingSummary(c *gin.Context) {
	summary, err := h.services.Rating.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

// fingerprint reads the client fingerprint from the header, the query
// string or a JSON body, in that order
func fingerprint(c *gin.Context) string {
	if fp := c.GetHeader(fingerprintHeader); fp != "" {
		return fp
	}
	if fp := c.Query("fingerprint"); fp != "" {
		return fp
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}

	var body struct {
		Fingerprint string `json:"fingerprint"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return ""
	}
	return body.Fingerprint
}
