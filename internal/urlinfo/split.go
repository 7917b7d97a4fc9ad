package urlinfo

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Unknown is reported for domain and site name when nothing can be derived.
const Unknown = "unknown"

// DefaultSuffixes is the ranked suffix table used to turn a hostname into
// a site name. It is a heuristic, not the public suffix list: hosts under
// uncommon multi-label suffixes keep part of the suffix in their site name.
var DefaultSuffixes = []string{
	".co.uk", ".com.au", ".co.za", ".co.in", ".co.jp", ".co.kr",
	".com", ".net", ".org", ".edu", ".gov", ".mil", ".int",
	".info", ".biz", ".name", ".pro", ".museum", ".coop",
	".uk", ".de", ".fr", ".it", ".es", ".nl", ".be", ".ch", ".at",
	".se", ".no", ".dk", ".fi", ".pl", ".cz", ".hu",
	".io", ".ai", ".ly", ".me", ".tv", ".cc", ".ws", ".blog",
}

var (
	fallbackHostRe   = regexp.MustCompile(`(?i)https?://(?:www\.)?([^/]+)`)
	fallbackSuffixRe = regexp.MustCompile(`(?i)(\.co\.uk|\.com\.au|\.com|\.net|\.org)$`)
)

// Splitter derives domain and site name using a suffix table. The zero
// value uses DefaultSuffixes. A Splitter is safe for concurrent use.
type Splitter struct {
	suffixes []string
}

// NewSplitter returns a Splitter over suffixes, longest first. Entries
// without a leading dot get one. An empty list selects DefaultSuffixes.
func NewSplitter(suffixes []string) *Splitter {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	ranked := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || s == "." {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return len(ranked[i]) > len(ranked[j]) })
	return &Splitter{suffixes: ranked}
}

var defaultSplitter = NewSplitter(nil)

// Split derives domain and site name with the default suffix table.
func Split(raw string) (domain, siteName string) {
	return defaultSplitter.Split(raw)
}

// Split returns the hostname of raw without a leading "www." and the same
// hostname with its first matching suffix removed. It never fails: when
// no host can be found both values are Unknown.
func (s *Splitter) Split(raw string) (domain, siteName string) {
	if s == nil || s.suffixes == nil {
		s = defaultSplitter
	}
	u, err := url.Parse(raw)
	if err == nil {
		host := strings.ToLower(u.Hostname())
		host = strings.TrimPrefix(host, "www.")
		if host != "" {
			site := host
			for _, suffix := range s.suffixes {
				if strings.HasSuffix(site, suffix) {
					site = strings.TrimSuffix(site, suffix)
					break
				}
			}
			if site == "" {
				site = Unknown
			}
			return host, site
		}
	}
	if m := fallbackHostRe.FindStringSubmatch(raw); m != nil && m[1] != "" {
		host := m[1]
		site := fallbackSuffixRe.ReplaceAllString(host, "")
		if site == "" {
			site = Unknown
		}
		return host, site
	}
	return Unknown, Unknown
}
