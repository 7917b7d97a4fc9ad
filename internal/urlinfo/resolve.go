// Package urlinfo finds the source URL of a document and derives a bare
// domain and a site name from it.
package urlinfo

import (
	"github.com/hyperifyio/htmlparse/internal/markup"
)

var (
	linkTags = markup.NewTagMatcher("link")
	metaTags = markup.NewTagMatcher("meta")
	baseTags = markup.NewTagMatcher("base")
)

// Resolve returns passed when it is non-empty. Otherwise it looks for a
// canonical link, then an og:url meta tag, then a base href, and returns
// the first value found. The result is not validated.
func Resolve(doc string, passed string) string {
	if passed != "" {
		return passed
	}
	if a, ok := linkTags.Find(doc, func(a markup.Attrs) bool {
		return a.Is("rel", "canonical") && a.Get("href") != ""
	}); ok {
		return a.Get("href")
	}
	if a, ok := metaTags.Find(doc, func(a markup.Attrs) bool {
		return a.Is("property", "og:url") && a.Get("content") != ""
	}); ok {
		return a.Get("content")
	}
	if a, ok := baseTags.Find(doc, func(a markup.Attrs) bool {
		return a.Get("href") != ""
	}); ok {
		return a.Get("href")
	}
	return ""
}
