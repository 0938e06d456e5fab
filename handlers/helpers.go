package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront-admin/apiclient"
	"storefront-admin/session"
	"storefront-admin/variantform"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentSessionID returns the session set by middleware.SessionMiddleware.
func currentSessionID(c *gin.Context) uuid.UUID {
	v, _ := c.Get("session_id")
	id, _ := v.(uuid.UUID)
	return id
}

// backendToken fetches the storefront token of the current session. When it
// is gone the admin is sent back to login and false is returned.
func backendToken(c *gin.Context, sessions *session.Store) (string, bool) {
	token, err := sessions.Tokens(currentSessionID(c)).Token(c.Request.Context())
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please log in again.", "redirect": "/login"})
		return "", false
	}
	return token, true
}

// respondAPIError answers with the storefront's own message when it gave one.
// Auth failures carry a redirect to the login screen.
func respondAPIError(c *gin.Context, err error, fallback string) {
	msg := apiclient.Message(err, fallback)

	if errors.Is(err, apiclient.ErrUnauthorized) || errors.Is(err, variantform.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg, "redirect": "/login"})
		return
	}

	status := http.StatusBadGateway
	var apiErr *apiclient.APIError
	var stockErr *variantform.StockError
	switch {
	case errors.As(err, &stockErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		status = apiErr.Status
	default:
		log.Printf("storefront API error: %v", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
