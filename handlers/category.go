package handlers

import (
	"net/http"

	"storefront-admin/apiclient"
	"storefront-admin/dtos"
	"storefront-admin/session"
	"storefront-admin/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	API      *apiclient.Client
	Sessions *session.Store
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.API.ListCategories(c.Request.Context())
	if err != nil {
		respondAPIError(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dtos.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	category, err := h.API.CreateCategory(c.Request.Context(), token, req.Name)
	if err != nil {
		respondAPIError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	if err := h.API.DeleteCategory(c.Request.Context(), token, id); err != nil {
		respondAPIError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// SlugPreview shows the slug the storefront will derive from a category name.
func (h *CategoryHandler) SlugPreview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slug": utils.SlugPreview(c.Query("name"))})
}
