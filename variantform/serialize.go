package variantform

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Multipart field names understood by the product endpoints.
const (
	FieldVariants      = "variants"
	FieldBanner        = "productBanner"
	FieldVariantImages = "variantImages"
	FieldBannerKeep    = "banner_image_url_keep"
	BannerDeleteMarker = "DELETE"
)

type Field struct {
	Name  string
	Value string
}

type Attachment struct {
	FieldName string
	File      *File
}

type SizePayload struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type VariantPayload struct {
	Color      string        `json:"color"`
	IsNewImage bool          `json:"isNewImage"`
	Image      *string       `json:"image"`
	Sizes      []SizePayload `json:"sizes"`
}

// Payload is a serialized draft. Scalar fields and the variants JSON travel as
// string parts; Files are the binary parts, ordered banner first and then each
// replaced variant image in variant order. The API pairs variant images with
// variants by that order.
type Payload struct {
	Fields     []Field
	BannerKeep string
	Variants   []VariantPayload
	Files      []Attachment
}

// Banner returns the new banner file, if one was attached.
func (p *Payload) Banner() *File {
	for _, a := range p.Files {
		if a.FieldName == FieldBanner {
			return a.File
		}
	}
	return nil
}

func (p *Payload) VariantsJSON() (string, error) {
	b, err := json.Marshal(p.Variants)
	if err != nil {
		return "", fmt.Errorf("failed to encode variants: %w", err)
	}
	return string(b), nil
}

// StockError reports a stock value that is not a number.
type StockError struct {
	Variant int
	Size    int
	Value   string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("variant %d, size %d: stock %q is not a number", e.Variant+1, e.Size+1, e.Value)
}

// Int coerces the entered stock to an integer. Blank input counts as zero and
// decimals are truncated; negative values are passed on for the API to judge.
// Values that do not fit an int are rejected.
func (s Stock) Int() (int, bool) {
	raw := strings.TrimSpace(string(s))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	// float64(math.MaxInt) rounds up to 2^63, which is already out of range.
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

func (t Tree) scalarFields() []Field {
	f := t.Fields
	fields := []Field{
		{Name: "name", Value: f.Name},
		{Name: "description", Value: f.Description},
		{Name: "price", Value: f.Price},
	}
	// On create an empty slug is left out so the API derives one from the name.
	if f.Slug != "" || t.Mode == ModeEdit {
		fields = append(fields, Field{Name: "slug", Value: f.Slug})
	}
	if f.CategoryID != "" {
		fields = append(fields, Field{Name: "category_id", Value: f.CategoryID})
	}
	return append(fields,
		Field{Name: "meta_title", Value: f.MetaTitle},
		Field{Name: "meta_description", Value: f.MetaDescription},
	)
}

// Serialize turns the draft into the multipart payload of the product
// endpoints. It fails only when a stock value cannot be read as a number.
func (t Tree) Serialize() (*Payload, error) {
	p := &Payload{
		Fields:   t.scalarFields(),
		Variants: make([]VariantPayload, 0, len(t.Variants)),
	}

	// Only an edit tells the API what to do with the stored banner.
	switch {
	case t.Banner.IsNew():
		p.Files = append(p.Files, Attachment{FieldName: FieldBanner, File: t.Banner.File})
	case t.Mode != ModeEdit:
	case t.Banner.State == ImagePersisted:
		p.BannerKeep = t.Banner.PersistedURL
	default:
		p.BannerKeep = BannerDeleteMarker
	}

	for vi, v := range t.Variants {
		vp := VariantPayload{
			Color:      v.Color,
			IsNewImage: v.Image.IsNew(),
			Sizes:      make([]SizePayload, 0, len(v.Sizes)),
		}
		if v.Image.State == ImagePersisted {
			url := v.Image.PersistedURL
			vp.Image = &url
		}
		if vp.IsNewImage {
			p.Files = append(p.Files, Attachment{FieldName: FieldVariantImages, File: v.Image.File})
		}

		for si, s := range v.Sizes {
			stock, ok := s.Stock.Int()
			if !ok {
				return nil, &StockError{Variant: vi, Size: si, Value: string(s.Stock)}
			}
			vp.Sizes = append(vp.Sizes, SizePayload{Size: s.Size, Stock: stock})
		}
		p.Variants = append(p.Variants, vp)
	}

	return p, nil
}
