package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login and the current user
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in models.UserInput
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds) {
		return
	}

	token, err := h.services.Auth.Login(c.Request.Context(), &creds)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, token)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	respondData(c, http.StatusOK, currentUser(c))
}

// UserHandler handles admin user management
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "users").Logger(),
	}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var in models.UserInput
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.services.User.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, user)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.services.User.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondSuccess(c)
}
