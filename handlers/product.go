package handlers

import (
	"log"
	"net/http"

	"storefront-admin/apiclient"
	"storefront-admin/dtos"
	"storefront-admin/models"
	"storefront-admin/session"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	API      *apiclient.Client
	Sessions *session.Store
}

// GetProducts lists one page of products, optionally filtered by search text
// and category slug.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	categorySlug := c.Query("category")

	page, err := h.API.ListProducts(ctx, apiclient.ProductQuery{
		Search:   c.Query("search"),
		Category: categorySlug,
		Page:     queryPage(c),
		Limit:    apiclient.ProductPageSize,
	})
	if err != nil {
		respondAPIError(c, err, "Failed to fetch products")
		return
	}

	resp := dtos.ProductListResponse{
		Data:       page.Data,
		Pagination: page.Pagination,
	}

	if categorySlug != "" {
		categories, err := h.API.ListCategories(ctx)
		if err != nil {
			log.Printf("Failed to fetch categories for product filter: %v", err)
		}
		if active := models.FindCategoryBySlug(categories, categorySlug); active != nil {
			resp.ActiveCategoryName = active.Name
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.API.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondAPIError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	if err := h.API.DeleteProduct(c.Request.Context(), token, id); err != nil {
		respondAPIError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
