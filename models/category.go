package models

type Category struct {
	ID   RemoteID `json:"id"`
	Name string   `json:"name"`
	Slug string   `json:"slug"`
}

// FindCategoryBySlug returns the category with the given slug, or nil.
func FindCategoryBySlug(categories []Category, slug string) *Category {
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i]
		}
	}
	return nil
}
