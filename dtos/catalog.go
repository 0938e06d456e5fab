package dtos

import "storefront-admin/models"

type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// ProductListResponse is a page of products plus the display name of the
// category filter, if one was applied.
type ProductListResponse struct {
	Data               []models.Product  `json:"data"`
	Pagination         models.Pagination `json:"pagination"`
	ActiveCategoryName string            `json:"active_category_name"`
}

// ArticleForm is the multipart form of the article create and update screens.
// Content is the editor's block document, passed through untouched.
type ArticleForm struct {
	Title   string `form:"title" binding:"required,max=200"`
	Excerpt string `form:"excerpt" binding:"max=500"`
	Status  string `form:"status" binding:"required,oneof=draft published"`
	Content string `form:"content" binding:"required"`
}
