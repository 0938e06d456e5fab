package handlers

import (
	"errors"
	"log"
	"net/http"

	"storefront-admin/apiclient"
	"storefront-admin/dtos"
	"storefront-admin/middleware"
	"storefront-admin/session"
	"storefront-admin/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	API      *apiclient.Client
	Sessions *session.Store
	Drafts   *utils.DraftStore
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", gin.Mode() == gin.ReleaseMode, true)
}

// Login checks the credentials against the storefront API and opens a
// dashboard session holding the storefront token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	result, err := h.API.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": apiclient.Message(err, "Invalid username or password")})
			return
		}
		respondAPIError(c, err, "Login failed")
		return
	}

	if result.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	sess, err := h.Sessions.Create(req.Username, result.Role, result.Token, utils.SessionTTL)
	if err != nil {
		log.Printf("Failed to create session for %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	token, err := utils.GenerateToken(sess.ID, sess.Username, sess.Role, sess.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.setSessionCookie(c, token, int(utils.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, dtos.LoginResponse{
		Token:     token,
		Username:  sess.Username,
		Role:      sess.Role,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Logout ends the session and drops the admin's unsaved drafts.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := currentSessionID(c)

	h.Drafts.DiscardSession(sessionID)
	if err := h.Sessions.Delete(sessionID); err != nil {
		log.Printf("Failed to delete session %s: %v", sessionID, err)
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	sess, err := h.Sessions.Get(currentSessionID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please log in again.", "redirect": "/login"})
		return
	}

	c.JSON(http.StatusOK, dtos.ProfileResponse{
		Username:  sess.Username,
		Role:      sess.Role,
		ExpiresAt: sess.ExpiresAt,
	})
}
