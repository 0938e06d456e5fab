package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"storefront-admin/models"
	"storefront-admin/variantform"
)

func (c *Client) CreateProduct(ctx context.Context, token string, p *variantform.Payload) (*models.Product, error) {
	return c.writeProduct(ctx, http.MethodPost, "/products", token, p)
}

func (c *Client) UpdateProduct(ctx context.Context, token, productID string, p *variantform.Payload) (*models.Product, error) {
	return c.writeProduct(ctx, http.MethodPut, "/products/"+url.PathEscape(productID), token, p)
}

func (c *Client) writeProduct(ctx context.Context, method, path, token string, p *variantform.Payload) (*models.Product, error) {
	body, contentType, err := productForm(p)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := c.do(ctx, request{
		method:      method,
		path:        path,
		token:       token,
		body:        body,
		contentType: contentType,
	}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
