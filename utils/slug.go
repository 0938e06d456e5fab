package utils

import (
	"regexp"
	"strings"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// SlugPreview shows the slug the storefront API will most likely derive from
// a category name. It is only a preview; the API owns the real slug.
func SlugPreview(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugInvalid.ReplaceAllString(s, "")
}
