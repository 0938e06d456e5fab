package handlers

import (
	"net/http"

	"storefront-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PreviewHandler struct {
	Drafts *utils.DraftStore
}

// GetPreview serves the bytes of a preview held by one of the caller's
// drafts. Released handles and other sessions' handles 404.
func (h *PreviewHandler) GetPreview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preview not found"})
		return
	}

	handle, ok := h.Drafts.Preview(currentSessionID(c), id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preview not found"})
		return
	}

	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, handle.ContentType, handle.Data())
}
