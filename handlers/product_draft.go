package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront-admin/apiclient"
	"storefront-admin/dtos"
	"storefront-admin/models"
	"storefront-admin/preview"
	"storefront-admin/session"
	"storefront-admin/utils"
	"storefront-admin/variantform"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductDraftHandler drives the product create and edit forms. Each request
// is one interaction applied to the server-side draft tree.
type ProductDraftHandler struct {
	API       *apiclient.Client
	Sessions  *session.Store
	Drafts    *utils.DraftStore
	Previews  *preview.Registry
	Submitter *variantform.Submitter
}

// categories backs the category select. A failed fetch leaves it empty.
func (h *ProductDraftHandler) categories(c *gin.Context) []models.Category {
	categories, err := h.API.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("Failed to fetch categories for product form: %v", err)
		return []models.Category{}
	}
	return categories
}

func (h *ProductDraftHandler) respondDraft(c *gin.Context, status int, d utils.Draft, withCategories bool) {
	view := dtos.NewDraftView(d.ID, d.Tree, d.Submitting, d.UpdatedAt)
	if withCategories {
		view.Categories = h.categories(c)
	}
	c.JSON(status, view)
}

func respondDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product draft not found"})
	case errors.Is(err, utils.ErrSubmitInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Product is already being saved"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product draft"})
	}
}

func draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft ID"})
		return uuid.Nil, false
	}
	return id, true
}

func indexParam(c *gin.Context, name string) (int, bool) {
	i, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return i, true
}

// edit applies fn to the draft named in the URL and answers with the result.
func (h *ProductDraftHandler) edit(c *gin.Context, fn func(variantform.Tree) variantform.Tree) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	d, err := h.Drafts.Update(id, currentSessionID(c), fn)
	if err != nil {
		respondDraftError(c, err)
		return
	}
	h.respondDraft(c, http.StatusOK, d, false)
}

// CreateDraft opens an empty product form.
func (h *ProductDraftHandler) CreateDraft(c *gin.Context) {
	d := h.Drafts.Create(currentSessionID(c), variantform.NewTree(h.Previews))
	h.respondDraft(c, http.StatusCreated, d, true)
}

// EditDraft opens a form pre-filled from the stored product.
func (h *ProductDraftHandler) EditDraft(c *gin.Context) {
	var req dtos.HydrateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	product, err := h.API.GetProductBySlug(c.Request.Context(), req.Slug)
	if err != nil {
		respondAPIError(c, err, "Product not found")
		return
	}

	d := h.Drafts.Create(currentSessionID(c), variantform.Hydrate(h.Previews, product))
	h.respondDraft(c, http.StatusCreated, d, true)
}

func (h *ProductDraftHandler) GetDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	d, err := h.Drafts.Get(id, currentSessionID(c))
	if err != nil {
		respondDraftError(c, err)
		return
	}
	h.respondDraft(c, http.StatusOK, d, true)
}

func (h *ProductDraftHandler) UpdateFields(c *gin.Context) {
	var patch dtos.DraftFieldsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.WithFields(patch.Apply(t.Fields))
	})
}

// readImage reads the image part of a multipart request.
func readImage(c *gin.Context, field string) (variantform.File, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required in field '" + field + "'"})
		return variantform.File{}, false
	}
	file, err := utils.ReadUpload(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return variantform.File{}, false
	}
	return file, true
}

func (h *ProductDraftHandler) UploadBanner(c *gin.Context) {
	file, ok := readImage(c, variantform.FieldBanner)
	if !ok {
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.AttachBanner(file)
	})
}

func (h *ProductDraftHandler) AddVariant(c *gin.Context) {
	h.edit(c, variantform.Tree.AddColorVariant)
}

func (h *ProductDraftHandler) RemoveVariant(c *gin.Context) {
	vi, ok := indexParam(c, "variant")
	if !ok {
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.RemoveColorVariant(vi)
	})
}

func (h *ProductDraftHandler) UpdateVariant(c *gin.Context) {
	vi, ok := indexParam(c, "variant")
	if !ok {
		return
	}
	var req dtos.VariantLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.UpdateColorVariantLabel(vi, req.Color)
	})
}

func (h *ProductDraftHandler) UploadVariantImage(c *gin.Context) {
	vi, ok := indexParam(c, "variant")
	if !ok {
		return
	}
	file, ok := readImage(c, "variantImage")
	if !ok {
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.AttachColorVariantImage(vi, file)
	})
}

func (h *ProductDraftHandler) AddSize(c *gin.Context) {
	vi, ok := indexParam(c, "variant")
	if !ok {
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.AddSizeEntry(vi)
	})
}

func (h *ProductDraftHandler) RemoveSize(c *gin.Context) {
	vi, ok := indexParam(c, "variant")
	if !ok {
		return
	}
	si, ok := indexParam(c, "size")
	if !ok {
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.RemoveSizeEntry(vi, si)
	})
}

func (h *ProductDraftHandler) UpdateSize(c *gin.Context) {
	vi, ok := indexParam(c, "variant")
	if !ok {
		return
	}
	si, ok := indexParam(c, "size")
	if !ok {
		return
	}
	var req dtos.SizeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	h.edit(c, func(t variantform.Tree) variantform.Tree {
		return t.UpdateSizeEntry(vi, si, variantform.SizeField(req.Field), req.Value)
	})
}

// Submit sends the draft to the storefront API. On success the draft and its
// previews are dropped; on failure it stays editable with one error message.
func (h *ProductDraftHandler) Submit(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	sessionID := currentSessionID(c)

	d, err := h.Drafts.BeginSubmit(id, sessionID)
	if err != nil {
		respondDraftError(c, err)
		return
	}

	product, err := h.Submitter.Submit(c.Request.Context(), h.Sessions.Tokens(sessionID), d.Tree)
	h.Drafts.EndSubmit(id, err == nil)
	if err != nil {
		fallback := "Failed to create product"
		if d.Tree.Mode == variantform.ModeEdit {
			fallback = "Failed to update product"
		}
		respondAPIError(c, err, fallback)
		return
	}

	if d.Tree.Mode == variantform.ModeEdit {
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product, "redirect": "/products"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product, "redirect": "/products"})
}

func (h *ProductDraftHandler) DiscardDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	if err := h.Drafts.Discard(id, currentSessionID(c)); err != nil {
		respondDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product draft discarded"})
}
