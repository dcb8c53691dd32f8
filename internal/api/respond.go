package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

// respondData writes a {"data": ...} success body
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// respondSuccess writes a {"success": true} body
func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondError maps a service error to a status code and {"error": ...} body
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	message := http.StatusText(status)
	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	} else if status == http.StatusUnauthorized {
		message = "Not authenticated"
	}
	c.JSON(status, gin.H{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// bindJSON decodes the request body or writes a 400
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}
