package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is the storefront API's product record.
type Product struct {
	ID              RemoteID `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Slug            string   `json:"slug"`
	CategoryID      RemoteID `json:"category_id"`
	CategoryName    string   `json:"category_name,omitempty"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	BannerImage     string   `json:"banner_image"`
	Stock           int      `json:"stock"`
	Variants        Variants `json:"variants"`
}

type Variant struct {
	Color string        `json:"color"`
	Image string        `json:"image,omitempty"`
	Sizes []VariantSize `json:"sizes"`
}

type VariantSize struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Variants decodes either a JSON array or a JSON string holding that array;
// the API returns both depending on the endpoint.
type Variants []Variant

func (v *Variants) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if encoded == "" {
			*v = nil
			return nil
		}
		data = []byte(encoded)
	}

	var out []Variant
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("invalid variants: %w", err)
	}
	*v = out
	return nil
}

// Pagination is the page metadata returned by list endpoints.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	Limit       int `json:"limit"`
}

type ProductPage struct {
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
