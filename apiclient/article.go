package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"storefront-admin/models"
	"storefront-admin/variantform"
)

// ArticleInput is the multipart body of article create/update. Content is the
// editor document and is sent as a JSON string.
type ArticleInput struct {
	Title     string
	Excerpt   string
	Status    string
	Content   json.RawMessage
	Thumbnail *variantform.File
}

func (c *Client) ListArticles(ctx context.Context, token string, page int, search string) (*models.ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("search", search)

	var res models.ArticlePage
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/articles/dashboard",
		query:  q,
		token:  token,
	}, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		res.Data = []models.Article{}
	}
	return &res, nil
}

func (c *Client) GetArticle(ctx context.Context, token, id string) (*models.Article, error) {
	var res struct {
		Data models.Article `json:"data"`
	}
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/articles/" + url.PathEscape(id),
		token:  token,
	}, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (c *Client) CreateArticle(ctx context.Context, token string, in ArticleInput) error {
	return c.writeArticle(ctx, http.MethodPost, "/articles", token, in)
}

func (c *Client) UpdateArticle(ctx context.Context, token, id string, in ArticleInput) error {
	return c.writeArticle(ctx, http.MethodPut, "/articles/"+url.PathEscape(id), token, in)
}

func (c *Client) DeleteArticle(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/articles/" + url.PathEscape(id),
		token:  token,
	}, nil)
}

func (c *Client) writeArticle(ctx context.Context, method, path, token string, in ArticleInput) error {
	fw := newFormWriter()
	fw.field("title", in.Title)
	fw.field("excerpt", in.Excerpt)
	if in.Status != "" {
		fw.field("status", in.Status)
	}
	if len(in.Content) > 0 {
		fw.field("content", string(in.Content))
	}
	fw.file("thumbnail", in.Thumbnail)

	body, contentType, err := fw.close()
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		method:      method,
		path:        path,
		token:       token,
		body:        body,
		contentType: contentType,
	}, nil)
}
