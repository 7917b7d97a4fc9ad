// Package sanitize removes regions of an HTML document that never hold
// article text: scripts, styles, comments, page chrome and elements whose
// class marks them as ads, comment threads, banners and the like.
//
// Matching is regex based. There is no nesting balance: an element is
// removed up to the first closing tag of the same name, so deeply nested
// same-named elements can be over- or under-matched.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptRe  = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	styleRe   = regexp.MustCompile(`(?is)<style\b.*?</style\s*>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// BlockTags are removed together with everything up to their closing tag.
var BlockTags = []string{"nav", "header", "footer", "aside", "iframe", "noscript", "template"}

var blockRes = compileBlocks(BlockTags)

func compileBlocks(tags []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(tags))
	for _, t := range tags {
		out = append(out, regexp.MustCompile(`(?is)<`+t+`\b.*?</`+t+`\s*>`))
	}
	return out
}

// ClassKeywords mark an element as non-content when found anywhere inside
// its class attribute.
var ClassKeywords = []string{
	"comment", "comments", "sidebar", "advert", "ads", "ad-",
	"promo", "newsletter", "cookie", "consent", "subscribe",
}

var classOpenRe = regexp.MustCompile(`(?i)<([a-z][a-z0-9-]*)\b[^>]*?\bclass\s*=\s*["'][^"']*(?:` + keywordAlternation(ClassKeywords) + `)[^"']*["'][^>]*>`)

func keywordAlternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// voidElements never have a closing tag; only the tag itself is dropped.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Sanitize returns doc without non-content regions. Removal order is
// scripts, styles, comments, block tags, then class-marked elements.
func Sanitize(doc string) string {
	doc = scriptRe.ReplaceAllString(doc, "")
	doc = styleRe.ReplaceAllString(doc, "")
	doc = commentRe.ReplaceAllString(doc, "")
	for _, re := range blockRes {
		doc = re.ReplaceAllString(doc, "")
	}
	return stripClassMarked(doc)
}

// stripClassMarked removes each class-marked element up to the first
// closing tag with the same name. An element without a closing tag is
// left in place, except for void and self-closed tags, which are dropped.
func stripClassMarked(doc string) string {
	var b strings.Builder
	lower := asciiLower(doc)
	pos := 0
	for pos < len(doc) {
		loc := classOpenRe.FindStringSubmatchIndex(doc[pos:])
		if loc == nil {
			break
		}
		start, openEnd := pos+loc[0], pos+loc[1]
		name := strings.ToLower(doc[pos+loc[2] : pos+loc[3]])
		b.WriteString(doc[pos:start])

		if voidElements[name] || strings.HasSuffix(doc[start:openEnd], "/>") {
			pos = openEnd
			continue
		}
		end := closingTagEnd(lower, openEnd, name)
		if end < 0 {
			b.WriteString(doc[start:openEnd])
			pos = openEnd
			continue
		}
		pos = end
	}
	b.WriteString(doc[pos:])
	return b.String()
}

// closingTagEnd returns the offset just past the first </name> at or
// after from in the ASCII-lowercased document, or -1.
func closingTagEnd(lower string, from int, name string) int {
	needle := "</" + name
	for {
		i := strings.Index(lower[from:], needle)
		if i < 0 {
			return -1
		}
		i += from
		j := i + len(needle)
		// Reject </divider> when looking for </div>.
		for j < len(lower) && (lower[j] == ' ' || lower[j] == '\t' || lower[j] == '\n' || lower[j] == '\r') {
			j++
		}
		if j < len(lower) && lower[j] == '>' {
			return j + 1
		}
		from = i + len(needle)
	}
}

// asciiLower lower-cases ASCII letters only, keeping byte offsets stable.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
