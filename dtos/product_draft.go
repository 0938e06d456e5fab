package dtos

import (
	"time"

	"storefront-admin/models"
	"storefront-admin/variantform"

	"github.com/google/uuid"
)

// HydrateDraftRequest opens an edit draft for an existing product.
type HydrateDraftRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// DraftFieldsPatch updates scalar fields; nil members are left unchanged.
type DraftFieldsPatch struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *string `json:"price"`
	Slug            *string `json:"slug"`
	CategoryID      *string `json:"category_id"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
}

// Apply returns f with the patched members replaced.
func (p DraftFieldsPatch) Apply(f variantform.Fields) variantform.Fields {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.Name, p.Name)
	set(&f.Description, p.Description)
	set(&f.Price, p.Price)
	set(&f.Slug, p.Slug)
	set(&f.CategoryID, p.CategoryID)
	set(&f.MetaTitle, p.MetaTitle)
	set(&f.MetaDescription, p.MetaDescription)
	return f
}

type VariantLabelRequest struct {
	Color string `json:"color"`
}

// SizeUpdateRequest edits one half of a size entry. Value is kept as typed,
// including for stock.
type SizeUpdateRequest struct {
	Field string `json:"field" binding:"required,oneof=size stock"`
	Value string `json:"value"`
}

type ImageView struct {
	State    string `json:"state"`
	URL      string `json:"url,omitempty"`
	IsNew    bool   `json:"is_new"`
	Filename string `json:"filename,omitempty"`
}

type SizeView struct {
	Size  string `json:"size"`
	Stock string `json:"stock"`
}

type VariantView struct {
	Color string     `json:"color"`
	Image ImageView  `json:"image"`
	Sizes []SizeView `json:"sizes"`
}

// DraftView is what the product form screen renders.
type DraftView struct {
	ID         uuid.UUID          `json:"id"`
	Mode       string             `json:"mode"`
	ProductID  string             `json:"product_id,omitempty"`
	Fields     variantform.Fields `json:"fields"`
	Banner     ImageView          `json:"banner"`
	Variants   []VariantView      `json:"variants"`
	Submitting bool               `json:"submitting"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Categories []models.Category  `json:"categories,omitempty"`
}

func newImageView(s variantform.ImageSlot) ImageView {
	v := ImageView{
		State: s.State.String(),
		URL:   s.PreviewURL(),
		IsNew: s.IsNew(),
	}
	if s.File != nil {
		v.Filename = s.File.Filename
	}
	return v
}

// NewDraftView renders a draft tree. Preview URLs point at this service;
// persisted URLs point at the storefront.
func NewDraftView(id uuid.UUID, t variantform.Tree, submitting bool, updatedAt time.Time) DraftView {
	view := DraftView{
		ID:         id,
		Mode:       t.Mode.String(),
		ProductID:  t.ProductID,
		Fields:     t.Fields,
		Banner:     newImageView(t.Banner),
		Variants:   make([]VariantView, 0, len(t.Variants)),
		Submitting: submitting,
		UpdatedAt:  updatedAt,
	}
	for _, v := range t.Variants {
		vv := VariantView{
			Color: v.Color,
			Image: newImageView(v.Image),
			Sizes: make([]SizeView, 0, len(v.Sizes)),
		}
		for _, s := range v.Sizes {
			vv.Sizes = append(vv.Sizes, SizeView{Size: s.Size, Stock: string(s.Stock)})
		}
		view.Variants = append(view.Variants, vv)
	}
	return view
}
