package variantform

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-admin/models"
	"storefront-admin/preview"
)

func fieldMap(p *Payload) map[string]string {
	out := make(map[string]string, len(p.Fields))
	for _, f := range p.Fields {
		out[f.Name] = f.Value
	}
	return out
}

func TestSerializeScenarioSingleVariant(t *testing.T) {
	tree := NewTree(preview.NewRegistry())
	tree = tree.UpdateColorVariantLabel(0, "Red")
	tree = tree.UpdateSizeEntry(0, 0, SizeFieldSize, "M")
	tree = tree.UpdateSizeEntry(0, 0, SizeFieldStock, "5")

	p, err := tree.Serialize()
	require.NoError(t, err)

	require.Len(t, p.Variants, 1)
	assert.Equal(t, "Red", p.Variants[0].Color)
	assert.Equal(t, []SizePayload{{Size: "M", Stock: 5}}, p.Variants[0].Sizes)
	assert.False(t, p.Variants[0].IsNewImage)
	assert.Nil(t, p.Variants[0].Image)
	assert.Empty(t, p.Files)
	assert.Empty(t, p.BannerKeep)
}

func TestSerializeEditWithoutBannerSendsDeleteMarker(t *testing.T) {
	tree := Hydrate(preview.NewRegistry(), &models.Product{ID: "3", Name: "Cap"})

	p, err := tree.Serialize()
	require.NoError(t, err)

	assert.Equal(t, BannerDeleteMarker, p.BannerKeep)
	assert.Nil(t, p.Banner())
}

func TestSerializeShapesMatchTree(t *testing.T) {
	tree := NewTree(preview.NewRegistry()).
		AddColorVariant().
		AddColorVariant().
		AddSizeEntry(1).
		AddSizeEntry(1).
		AddSizeEntry(2)

	p, err := tree.Serialize()
	require.NoError(t, err)

	require.Len(t, p.Variants, len(tree.Variants))
	for i, v := range tree.Variants {
		assert.Len(t, p.Variants[i].Sizes, len(v.Sizes))
	}
}

func TestStockCoercion(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"", 0},
		{"  ", 0},
		{" 8 ", 8},
		{"3.9", 3},
		{"-2", -2},
	}
	for _, c := range cases {
		got, ok := Stock(c.in).Int()
		assert.True(t, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	_, ok := Stock("ten").Int()
	assert.False(t, ok)
	_, ok = Stock("NaN").Int()
	assert.False(t, ok)

	for _, in := range []string{"99999999999999999999", "-99999999999999999999", "1e30", "-1e30", "9.3e18"} {
		_, ok := Stock(in).Int()
		assert.False(t, ok, in)
	}
}

func TestSerializeRejectsOverflowingStock(t *testing.T) {
	tree := NewTree(preview.NewRegistry()).
		UpdateSizeEntry(0, 0, SizeFieldStock, "99999999999999999999")

	_, err := tree.Serialize()

	var stockErr *StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "99999999999999999999", stockErr.Value)
}

func TestSerializeRejectsNonNumericStock(t *testing.T) {
	tree := NewTree(preview.NewRegistry()).
		AddColorVariant().
		AddSizeEntry(1).
		UpdateSizeEntry(1, 1, SizeFieldStock, "lots")

	_, err := tree.Serialize()
	require.Error(t, err)

	var stockErr *StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 1, stockErr.Variant)
	assert.Equal(t, 1, stockErr.Size)
	assert.Contains(t, err.Error(), "variant 2, size 2")
}

func TestSerializeStockIsNumberInJSON(t *testing.T) {
	tree := NewTree(preview.NewRegistry()).
		UpdateSizeEntry(0, 0, SizeFieldStock, "12")

	p, err := tree.Serialize()
	require.NoError(t, err)
	raw, err := p.VariantsJSON()
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	sizes := decoded[0]["sizes"].([]interface{})
	stock := sizes[0].(map[string]interface{})["stock"]
	assert.IsType(t, float64(0), stock)
	assert.Equal(t, float64(12), stock)
	assert.Nil(t, decoded[0]["image"])
	assert.Equal(t, false, decoded[0]["isNewImage"])
}

func TestSerializeScenarioHydratedUnchanged(t *testing.T) {
	product := &models.Product{
		ID:          "17",
		Name:        "Linen Shirt",
		Price:       199000,
		Slug:        "linen-shirt",
		CategoryID:  "3",
		BannerImage: "https://cdn.example/banner.webp",
		Variants: models.Variants{
			{Color: "White", Image: "https://cdn.example/white.webp", Sizes: []models.VariantSize{{Size: "S", Stock: 4}, {Size: "M", Stock: 0}}},
			{Color: "Sand", Image: "https://cdn.example/sand.webp", Sizes: []models.VariantSize{{Size: "S", Stock: 1}, {Size: "M", Stock: 9}}},
		},
	}
	tree := Hydrate(preview.NewRegistry(), product)

	p, err := tree.Serialize()
	require.NoError(t, err)

	require.Len(t, p.Variants, 2)
	for i, v := range p.Variants {
		assert.False(t, v.IsNewImage)
		require.NotNil(t, v.Image)
		assert.Equal(t, product.Variants[i].Image, *v.Image)
		require.Len(t, v.Sizes, 2)
	}
	assert.Equal(t, 9, p.Variants[1].Sizes[1].Stock)
	assert.Empty(t, p.Files)
	assert.Equal(t, "https://cdn.example/banner.webp", p.BannerKeep)

	fields := fieldMap(p)
	assert.Equal(t, "Linen Shirt", fields["name"])
	assert.Equal(t, "199000", fields["price"])
	assert.Equal(t, "linen-shirt", fields["slug"])
	assert.Equal(t, "3", fields["category_id"])
}

func TestSerializeFileOrderFollowsVariants(t *testing.T) {
	reg := preview.NewRegistry()
	tree := Hydrate(reg, &models.Product{
		ID: "5",
		Variants: models.Variants{
			{Color: "A", Image: "https://cdn.example/a.webp"},
			{Color: "B"},
			{Color: "C", Image: "https://cdn.example/c.webp"},
		},
	})
	tree = tree.
		AttachColorVariantImage(2, webp("c-new.webp")).
		AttachColorVariantImage(1, webp("b-new.webp")).
		AttachBanner(webp("banner.webp"))

	p, err := tree.Serialize()
	require.NoError(t, err)

	require.Len(t, p.Files, 3)
	assert.Equal(t, FieldBanner, p.Files[0].FieldName)
	assert.Equal(t, "banner.webp", p.Files[0].File.Filename)
	assert.Equal(t, FieldVariantImages, p.Files[1].FieldName)
	assert.Equal(t, "b-new.webp", p.Files[1].File.Filename)
	assert.Equal(t, "c-new.webp", p.Files[2].File.Filename)
	assert.Equal(t, "", p.BannerKeep)
	assert.NotNil(t, p.Banner())

	require.NotNil(t, p.Variants[0].Image)
	assert.False(t, p.Variants[0].IsNewImage)
	assert.True(t, p.Variants[1].IsNewImage)
	assert.Nil(t, p.Variants[1].Image)
	assert.True(t, p.Variants[2].IsNewImage)
	assert.Nil(t, p.Variants[2].Image, "replaced image must not send the old reference")
}

func TestSerializeOmitsEmptySlugOnCreate(t *testing.T) {
	p, err := NewTree(preview.NewRegistry()).Serialize()
	require.NoError(t, err)
	_, ok := fieldMap(p)["slug"]
	assert.False(t, ok)
	_, ok = fieldMap(p)["category_id"]
	assert.False(t, ok)

	edit := Hydrate(preview.NewRegistry(), &models.Product{ID: "1"})
	p, err = edit.Serialize()
	require.NoError(t, err)
	_, ok = fieldMap(p)["slug"]
	assert.True(t, ok)
}
