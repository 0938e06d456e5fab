package handlers

import (
	"encoding/json"
	"net/http"

	"storefront-admin/apiclient"
	"storefront-admin/dtos"
	"storefront-admin/session"
	"storefront-admin/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	API      *apiclient.Client
	Sessions *session.Store
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	articles, err := h.API.ListArticles(c.Request.Context(), token, queryPage(c), c.Query("search"))
	if err != nil {
		respondAPIError(c, err, "Failed to fetch articles")
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	article, err := h.API.GetArticle(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondAPIError(c, err, "Article not found")
		return
	}

	c.JSON(http.StatusOK, article)
}

// bindArticle reads the article form. The thumbnail is optional; on update a
// missing one keeps the stored thumbnail.
func bindArticle(c *gin.Context) (apiclient.ArticleInput, bool) {
	var form dtos.ArticleForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return apiclient.ArticleInput{}, false
	}
	if !json.Valid([]byte(form.Content)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content must be valid JSON"})
		return apiclient.ArticleInput{}, false
	}

	in := apiclient.ArticleInput{
		Title:   form.Title,
		Excerpt: form.Excerpt,
		Status:  form.Status,
		Content: json.RawMessage(form.Content),
	}

	if fh, err := c.FormFile("thumbnail"); err == nil {
		file, err := utils.ReadUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return apiclient.ArticleInput{}, false
		}
		in.Thumbnail = &file
	}
	return in, true
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	in, ok := bindArticle(c)
	if !ok {
		return
	}
	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	if err := h.API.CreateArticle(c.Request.Context(), token, in); err != nil {
		respondAPIError(c, err, "Failed to create article")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Article created successfully"})
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	in, ok := bindArticle(c)
	if !ok {
		return
	}
	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	if err := h.API.UpdateArticle(c.Request.Context(), token, c.Param("id"), in); err != nil {
		respondAPIError(c, err, "Failed to update article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article updated successfully"})
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	token, ok := backendToken(c, h.Sessions)
	if !ok {
		return
	}

	if err := h.API.DeleteArticle(c.Request.Context(), token, c.Param("id")); err != nil {
		respondAPIError(c, err, "Failed to delete article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
