// Package web maps service errors onto HTTP responses so handlers stay
// free of status-code bookkeeping.
package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	authservice "pagecraft/backend/internal/auth/service"
	"pagecraft/backend/internal/db"
	"pagecraft/backend/internal/platform/ownership"
)

// ErrNotFound is returned by services when a requested resource does not
// exist or is outside the caller's scope.
var ErrNotFound = errors.New("resource not found")

// Error writes the JSON error response for err. Service sentinels map to
// their transport codes; anything unrecognized is a 500 with a generic
// message so internal details never reach the client.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authservice.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, authservice.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, ownership.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, authservice.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, db.ErrUnavailable):
		log.Printf("store unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// BadRequest reports a malformed or invalid request body.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
