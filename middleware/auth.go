package middleware

import (
	"net/http"
	"strings"

	"storefront-admin/models"
	"storefront-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie the dashboard token is stored in.
const SessionCookie = "admin_session"

// SessionLookup resolves a live admin session.
type SessionLookup interface {
	Get(id uuid.UUID) (*models.AdminSession, error)
}

func tokenFromRequest(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// SessionMiddleware accepts the dashboard token from the session cookie or a
// Bearer header and requires the session behind it to still exist.
func SessionMiddleware(sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": "/login"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "redirect": "/login"})
			c.Abort()
			return
		}

		session, err := sessions.Get(claims.SessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please log in again.", "redirect": "/login"})
			c.Abort()
			return
		}

		c.Set("session_id", session.ID)
		c.Set("username", session.Username)
		c.Set("user_role", session.Role)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
