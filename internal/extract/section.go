package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/htmlparse/internal/markup"
)

// sectionCandidates are evaluated in order. Only the first occurrence of
// each pattern counts, and the payload is the last capture group.
var sectionCandidates = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<article\b[^>]*>(.*?)</article\s*>`),
	regexp.MustCompile(`(?is)<main\b[^>]*>(.*?)</main\s*>`),
	regexp.MustCompile(`(?is)<div\b[^>]*?\bclass\s*=\s*["'][^"']*(?:post-content|entry-content|article-content|content-area|post-body|content)[^"']*["'][^>]*>(.*?)</div\s*>`),
}

var bodyRe = regexp.MustCompile(`(?is)<body\b[^>]*>(.*?)</body\s*>`)

// SelectSection returns the HTML fragment most likely to hold the article
// body. The candidate with the longest whitespace-collapsed payload wins;
// ties keep the earlier candidate. Without a usable candidate it falls back
// to the body contents and then to the whole document.
func SelectSection(doc string) string {
	best, bestLen := "", 0
	for _, re := range sectionCandidates {
		m := re.FindStringSubmatch(doc)
		if m == nil {
			continue
		}
		payload := m[len(m)-1]
		if n := collapsedLen(payload); n > bestLen {
			best, bestLen = payload, n
		}
	}
	if strings.TrimSpace(best) != "" {
		return best
	}
	if m := bodyRe.FindStringSubmatch(doc); m != nil && strings.TrimSpace(m[1]) != "" {
		return m[1]
	}
	return doc
}

func collapsedLen(s string) int {
	return utf8.RuneCountInString(markup.CollapseSpace(s))
}
