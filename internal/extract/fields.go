package extract

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/htmlparse/internal/markup"
)

var (
	h1Re       = regexp.MustCompile(`(?is)<h1\b[^>]*>(.*?)</h1\s*>`)
	titleTagRe = regexp.MustCompile(`(?is)<title\b[^>]*>(.*?)</title\s*>`)
	classedH1  = regexp.MustCompile(`(?is)<h1\b[^>]*?\bclass\s*=\s*["'][^"']*(?:post-title|entry-title|article-title)[^"']*["'][^>]*>(.*?)</h1\s*>`)
	classedH2  = regexp.MustCompile(`(?is)<h2\b[^>]*?\bclass\s*=\s*["'][^"']*(?:post-title|entry-title|article-title)[^"']*["'][^>]*>(.*?)</h2\s*>`)

	bylineSpan = regexp.MustCompile(`(?is)<span\b[^>]*?\bclass\s*=\s*["'][^"']*(?:author|byline|post-author)[^"']*["'][^>]*>(.*?)</span\s*>`)
	bylineDiv  = regexp.MustCompile(`(?is)<div\b[^>]*?\bclass\s*=\s*["'][^"']*(?:author|byline|post-author)[^"']*["'][^>]*>(.*?)</div\s*>`)
	anchorEnd  = regexp.MustCompile(`(?is)^(.*?)</a\s*>`)

	metaTags   = markup.NewTagMatcher("meta")
	anchorTags = markup.NewTagMatcher("a")
)

// Clean strips tags, unescapes entities, collapses whitespace (including
// non-breaking spaces) to single spaces and trims the result.
func Clean(s string) string {
	s = markup.StripTags(s)
	s = markup.Unescape(s)
	return strings.TrimSpace(markup.CollapseSpace(s))
}

// Title returns the first non-empty cleaned candidate out of: the first
// h1, an og:title meta tag, the title element, and an h1/h2 carrying a
// post-title style class.
func Title(doc string) string {
	candidates := []func() string{
		func() string { return firstGroup(h1Re, doc) },
		func() string { return metaContent(doc, "property", "og:title") },
		func() string { return firstGroup(titleTagRe, doc) },
		func() string { return earliestGroup(doc, classedH1, classedH2) },
	}
	return firstClean(candidates)
}

// Author returns the first non-empty cleaned candidate out of: a meta
// author tag, a span/div with an author or byline class, and the text of
// a rel="author" link.
func Author(doc string) string {
	candidates := []func() string{
		func() string { return metaContent(doc, "name", "author") },
		func() string { return earliestGroup(doc, bylineSpan, bylineDiv) },
		func() string { return relAuthorText(doc) },
	}
	return firstClean(candidates)
}

func firstClean(candidates []func() string) string {
	for _, c := range candidates {
		if v := Clean(c()); v != "" {
			return v
		}
	}
	return ""
}

func firstGroup(re *regexp.Regexp, doc string) string {
	if m := re.FindStringSubmatch(doc); m != nil {
		return m[1]
	}
	return ""
}

// earliestGroup returns the capture of whichever pattern matches first in
// the document.
func earliestGroup(doc string, res ...*regexp.Regexp) string {
	best, bestAt := "", -1
	for _, re := range res {
		m := re.FindStringSubmatchIndex(doc)
		if m == nil {
			continue
		}
		if bestAt < 0 || m[0] < bestAt {
			best, bestAt = doc[m[2]:m[3]], m[0]
		}
	}
	return best
}

func metaContent(doc, key, want string) string {
	a, ok := metaTags.Find(doc, func(a markup.Attrs) bool {
		return a.Is(key, want) && a.Get("content") != ""
	})
	if !ok {
		return ""
	}
	return a.Get("content")
}

func relAuthorText(doc string) string {
	_, end, ok := anchorTags.FindEnd(doc, func(a markup.Attrs) bool {
		return a.Is("rel", "author")
	})
	if !ok {
		return ""
	}
	if m := anchorEnd.FindStringSubmatch(doc[end:]); m != nil {
		return m[1]
	}
	return ""
}
