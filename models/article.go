package models

import "encoding/json"

const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
)

// Article is a blog article. Content is the editor's block document and is
// passed through untouched.
type Article struct {
	ID           RemoteID        `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug,omitempty"`
	Excerpt      string          `json:"excerpt"`
	Thumbnail    string          `json:"thumbnail"`
	Status       string          `json:"status"`
	CategoryName string          `json:"category_name,omitempty"`
	Content      json.RawMessage `json:"content,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
}

type ArticlePage struct {
	Data       []Article  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
