package variantform

import (
	"strconv"

	"storefront-admin/models"
	"storefront-admin/preview"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Fields are the scalar product fields exactly as the admin typed them.
type Fields struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Slug            string `json:"slug"`
	CategoryID      string `json:"category_id"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// Stock is the stock count as entered; it becomes an integer on Serialize.
type Stock string

type SizeEntry struct {
	Size  string
	Stock Stock
}

type ColorVariant struct {
	Color string
	Image ImageSlot
	Sizes []SizeEntry
}

// SizeField selects which half of a size entry UpdateSizeEntry replaces.
type SizeField string

const (
	SizeFieldSize  SizeField = "size"
	SizeFieldStock SizeField = "stock"
)

// Tree is a product draft: scalar fields, a banner and the color/size variant
// tree. Every edit returns a new Tree and leaves the receiver untouched.
// Variants that an edit does not touch share their size slices with the
// previous tree.
type Tree struct {
	Mode      Mode
	ProductID string
	Fields    Fields
	Banner    ImageSlot
	Variants  []ColorVariant

	registry *preview.Registry
}

func emptySize() SizeEntry {
	return SizeEntry{Stock: "0"}
}

func emptyVariant() ColorVariant {
	return ColorVariant{Sizes: []SizeEntry{emptySize()}}
}

// NewTree returns the draft for a new product: one variant with one size.
func NewTree(reg *preview.Registry) Tree {
	return Tree{
		Mode:     ModeCreate,
		Variants: []ColorVariant{emptyVariant()},
		registry: reg,
	}
}

// Hydrate builds an edit draft from a stored product. Persisted images are
// kept as references; no previews are created.
func Hydrate(reg *preview.Registry, p *models.Product) Tree {
	t := Tree{
		Mode:      ModeEdit,
		ProductID: p.ID.String(),
		Fields: Fields{
			Name:            p.Name,
			Description:     p.Description,
			Price:           strconv.FormatFloat(p.Price, 'f', -1, 64),
			Slug:            p.Slug,
			CategoryID:      p.CategoryID.String(),
			MetaTitle:       p.MetaTitle,
			MetaDescription: p.MetaDescription,
		},
		Banner:   persistedSlot(p.BannerImage),
		registry: reg,
	}

	for _, v := range p.Variants {
		cv := ColorVariant{Color: v.Color, Image: persistedSlot(v.Image)}
		for _, s := range v.Sizes {
			cv.Sizes = append(cv.Sizes, SizeEntry{Size: s.Size, Stock: Stock(strconv.Itoa(s.Stock))})
		}
		if len(cv.Sizes) == 0 {
			cv.Sizes = []SizeEntry{emptySize()}
		}
		t.Variants = append(t.Variants, cv)
	}
	if len(t.Variants) == 0 {
		t.Variants = []ColorVariant{emptyVariant()}
	}
	return t
}

func (t Tree) withVariants(variants []ColorVariant) Tree {
	t.Variants = variants
	return t
}

func (t Tree) copyVariants() []ColorVariant {
	out := make([]ColorVariant, len(t.Variants))
	copy(out, t.Variants)
	return out
}

func (t Tree) hasVariant(i int) bool {
	return i >= 0 && i < len(t.Variants)
}

func (t Tree) hasSize(vi, si int) bool {
	return t.hasVariant(vi) && si >= 0 && si < len(t.Variants[vi].Sizes)
}

// WithFields replaces the scalar product fields.
func (t Tree) WithFields(f Fields) Tree {
	t.Fields = f
	return t
}

// AttachBanner sets a new banner file, releasing any earlier banner preview.
func (t Tree) AttachBanner(f File) Tree {
	t.Banner = t.Banner.attach(t.registry, f)
	return t
}

func (t Tree) AddColorVariant() Tree {
	variants := make([]ColorVariant, len(t.Variants), len(t.Variants)+1)
	copy(variants, t.Variants)
	return t.withVariants(append(variants, emptyVariant()))
}

// RemoveColorVariant drops the variant at i and releases its preview. A tree
// with a single variant is returned unchanged.
func (t Tree) RemoveColorVariant(i int) Tree {
	if len(t.Variants) <= 1 || !t.hasVariant(i) {
		return t
	}

	removed := t.Variants[i]
	variants := make([]ColorVariant, 0, len(t.Variants)-1)
	variants = append(variants, t.Variants[:i]...)
	variants = append(variants, t.Variants[i+1:]...)
	removed.Image.release()
	return t.withVariants(variants)
}

func (t Tree) UpdateColorVariantLabel(i int, label string) Tree {
	if !t.hasVariant(i) {
		return t
	}
	variants := t.copyVariants()
	variants[i].Color = label
	return t.withVariants(variants)
}

func (t Tree) AttachColorVariantImage(i int, f File) Tree {
	if !t.hasVariant(i) {
		return t
	}
	variants := t.copyVariants()
	variants[i].Image = variants[i].Image.attach(t.registry, f)
	return t.withVariants(variants)
}

func (t Tree) AddSizeEntry(vi int) Tree {
	if !t.hasVariant(vi) {
		return t
	}
	variants := t.copyVariants()
	sizes := make([]SizeEntry, len(variants[vi].Sizes), len(variants[vi].Sizes)+1)
	copy(sizes, variants[vi].Sizes)
	variants[vi].Sizes = append(sizes, emptySize())
	return t.withVariants(variants)
}

// RemoveSizeEntry drops one size. A variant with a single size is left as is.
func (t Tree) RemoveSizeEntry(vi, si int) Tree {
	if !t.hasSize(vi, si) || len(t.Variants[vi].Sizes) <= 1 {
		return t
	}
	variants := t.copyVariants()
	old := variants[vi].Sizes
	sizes := make([]SizeEntry, 0, len(old)-1)
	sizes = append(sizes, old[:si]...)
	sizes = append(sizes, old[si+1:]...)
	variants[vi].Sizes = sizes
	return t.withVariants(variants)
}

// UpdateSizeEntry replaces the label or the stock of one size. Stock is kept
// as given; coercion happens in Serialize.
func (t Tree) UpdateSizeEntry(vi, si int, field SizeField, value string) Tree {
	if !t.hasSize(vi, si) {
		return t
	}
	variants := t.copyVariants()
	sizes := make([]SizeEntry, len(variants[vi].Sizes))
	copy(sizes, variants[vi].Sizes)

	switch field {
	case SizeFieldSize:
		sizes[si].Size = value
	case SizeFieldStock:
		sizes[si].Stock = Stock(value)
	default:
		return t
	}
	variants[vi].Sizes = sizes
	return t.withVariants(variants)
}

// Previews lists the live preview handles owned by the tree.
func (t Tree) Previews() []*preview.Handle {
	var out []*preview.Handle
	if t.Banner.Preview != nil {
		out = append(out, t.Banner.Preview)
	}
	for _, v := range t.Variants {
		if v.Image.Preview != nil {
			out = append(out, v.Image.Preview)
		}
	}
	return out
}

// Release frees every preview the tree owns. Safe to call repeatedly.
func (t Tree) Release() {
	for _, h := range t.Previews() {
		h.Release()
	}
}
