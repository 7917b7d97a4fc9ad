// Package textrender flattens an HTML fragment into plain text with
// paragraph breaks, bulleted list items and one line per table row.
package textrender

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/htmlparse/internal/markup"
)

// Bullet prefixes every list item.
const Bullet = "• "

var (
	brRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockRe = regexp.MustCompile(`(?i)<(/?)(p|div|section|article|li|ul|ol|h1|h2|h3|h4|blockquote)\b[^>]*>`)
	liRe    = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	tableRe = regexp.MustCompile(`(?is)<table\b.*?</table\s*>`)

	trOpenRe   = regexp.MustCompile(`(?i)<tr\b[^>]*>`)
	trCloseRe  = regexp.MustCompile(`(?i)</tr\s*>`)
	cellOpenRe = regexp.MustCompile(`(?i)<t[dh]\b[^>]*>`)
	cellEndRe  = regexp.MustCompile(`(?i)</t[dh]\s*>`)

	spaceBeforeNL = regexp.MustCompile(`[ \t]+\n`)
	manyNewlines  = regexp.MustCompile(`\n{3,}`)
	manySpaces    = regexp.MustCompile(`[ \t]{2,}`)
)

// ToText converts fragment to plain text. Steps run in a fixed order:
// line breaks, block tags, list bullets, tables, remaining tags, whitespace
// normalization and finally entity unescaping.
func ToText(fragment string) string {
	s := brRe.ReplaceAllString(fragment, "\n")
	s = blockRe.ReplaceAllStringFunc(s, replaceBlock)
	s = liRe.ReplaceAllString(s, Bullet)
	s = tableRe.ReplaceAllStringFunc(s, tableToText)
	s = markup.StripTags(s)

	s = strings.ReplaceAll(s, "\r", "")
	s = spaceBeforeNL.ReplaceAllString(s, "\n")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	s = manySpaces.ReplaceAllString(s, " ")

	return strings.TrimSpace(markup.Unescape(s))
}

// replaceBlock emits a newline for closing tags and opening headings.
// Opening li tags are kept for the bullet step.
func replaceBlock(tag string) string {
	m := blockRe.FindStringSubmatch(tag)
	closing, name := m[1] == "/", strings.ToLower(m[2])
	switch {
	case closing:
		return "\n"
	case name == "li":
		return tag
	case len(name) == 2 && name[0] == 'h':
		return "\n"
	}
	return ""
}

func tableToText(table string) string {
	t := trOpenRe.ReplaceAllString(table, "\n")
	t = trCloseRe.ReplaceAllString(t, "\n")
	t = cellOpenRe.ReplaceAllString(t, " ")
	t = cellEndRe.ReplaceAllString(t, " ")
	return markup.StripTags(t)
}
