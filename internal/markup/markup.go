// Package markup holds small regex and tokenizer helpers shared by the
// extraction packages. Nothing here builds a DOM: tags are located with
// regular expressions and only the located tag is handed to the x/net/html
// tokenizer to read its attributes.
package markup

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Attrs maps lower-cased attribute names to their unescaped values.
// The first occurrence of a duplicated attribute wins.
type Attrs map[string]string

// Get returns the trimmed value of key, or "".
func (a Attrs) Get(key string) string {
	return strings.TrimSpace(a[key])
}

// Is reports whether the attribute equals want, ignoring case and
// surrounding whitespace.
func (a Attrs) Is(key, want string) bool {
	return strings.EqualFold(a.Get(key), want)
}

// TagMatcher finds opening tags of one element name.
type TagMatcher struct {
	name string
	re   *regexp.Regexp
}

// NewTagMatcher compiles a matcher for opening tags named name.
func NewTagMatcher(name string) *TagMatcher {
	return &TagMatcher{
		name: strings.ToLower(name),
		re:   regexp.MustCompile(`(?i)<` + regexp.QuoteMeta(name) + `\b[^>]*>`),
	}
}

// Find returns the attributes of the first tag for which keep returns true.
func (m *TagMatcher) Find(doc string, keep func(Attrs) bool) (Attrs, bool) {
	attrs, _, ok := m.FindEnd(doc, keep)
	return attrs, ok
}

// FindEnd is like Find and also returns the byte offset just past the
// matched tag, so callers can read the element's inner text.
func (m *TagMatcher) FindEnd(doc string, keep func(Attrs) bool) (Attrs, int, bool) {
	for _, loc := range m.re.FindAllStringIndex(doc, -1) {
		attrs := ParseAttrs(doc[loc[0]:loc[1]])
		if attrs == nil {
			continue
		}
		if keep == nil || keep(attrs) {
			return attrs, loc[1], true
		}
	}
	return nil, 0, false
}

// ParseAttrs tokenizes a single start tag and returns its attributes.
// It returns nil when tag is not a start tag.
func ParseAttrs(tag string) Attrs {
	z := html.NewTokenizer(strings.NewReader(tag))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken:
	default:
		return nil
	}
	attrs := Attrs{}
	_, hasAttr := z.TagName()
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if len(key) == 0 {
			continue
		}
		if _, seen := attrs[string(key)]; !seen {
			attrs[string(key)] = string(val)
		}
	}
	return attrs
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// StripTags removes anything that looks like a tag.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// Unescape decodes HTML character references, including &nbsp;.
func Unescape(s string) string {
	return html.UnescapeString(s)
}

// CollapseSpace replaces every run of Unicode whitespace with one ASCII
// space. Leading and trailing runs are kept as a single space.
func CollapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		b.WriteRune(r)
		inSpace = false
	}
	return b.String()
}
