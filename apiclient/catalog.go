package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storefront-admin/models"
)

// ProductPageSize is the page size of the product list screen.
const ProductPageSize = 10

type ProductQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = ProductPageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	return v
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, request{method: http.MethodGet, path: "/categories"}, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name string) (*models.Category, error) {
	body, err := c.jsonBody(map[string]string{"name": name})
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/categories",
		token:       token,
		body:        body,
		contentType: "application/json",
	}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/categories/" + url.PathEscape(id),
		token:  token,
	}, nil)
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	var page models.ProductPage
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/products/public",
		query:  q.values(),
		apiKey: true,
	}, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []models.Product{}
	}
	return &page, nil
}

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/products/public/" + url.PathEscape(slug),
		apiKey: true,
	}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/products/" + url.PathEscape(id),
		token:  token,
	}, nil)
}
