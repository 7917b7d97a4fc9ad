// Package pipeline wires the extraction stages into one call: URL
// resolution and domain splitting on one side, sanitizing, section
// selection, field extraction, text rendering, truncation and prompt
// rendering on the other. A Pipeline holds only immutable configuration
// and is safe for concurrent use.
package pipeline

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/htmlparse/internal/extract"
	"github.com/hyperifyio/htmlparse/internal/sanitize"
	"github.com/hyperifyio/htmlparse/internal/template"
	"github.com/hyperifyio/htmlparse/internal/textrender"
	"github.com/hyperifyio/htmlparse/internal/truncate"
	"github.com/hyperifyio/htmlparse/internal/urlinfo"
)

const (
	// DefaultVersion is reported when Config.Version is empty.
	DefaultVersion = "1.0.0"
	// DefaultSnippetChars caps content_snip.
	DefaultSnippetChars = 1000
	// TimestampLayout renders extracted_at as ISO-8601 UTC with a Z suffix.
	TimestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Config holds the defaults that would otherwise be package globals.
type Config struct {
	// MaxChars is the content cap used by DefaultOptions.
	MaxChars int
	// SnippetChars caps content_snip. Zero selects DefaultSnippetChars.
	SnippetChars int
	// Version is the extractor version written to every result.
	Version string
	// Suffixes overrides the domain splitter's suffix table.
	Suffixes []string
	// Extractor selects the content section, title and author.
	// Nil selects extract.HeuristicExtractor.
	Extractor extract.Extractor
	// Now is the clock for extracted_at. Nil selects time.Now.
	Now func() time.Time
}

// Options are the per-call formatting options.
type Options struct {
	// MaxChars caps content. Values <= 0 disable the cap; positive values
	// outside the accepted range fall back to the default cap.
	MaxChars int
	// WordSafe selects word-boundary truncation over an exact cut.
	WordSafe bool
	// PromptTemplate is rendered with the result fields. Empty disables it.
	PromptTemplate string
}

// Input is one document to extract.
type Input struct {
	HTML    string
	URL     string
	Options Options
}

// Pipeline runs extractions with a fixed configuration.
type Pipeline struct {
	cfg       Config
	splitter  *urlinfo.Splitter
	extractor extract.Extractor
	now       func() time.Time
}

// New returns a Pipeline for cfg, filling zero fields with defaults.
func New(cfg Config) *Pipeline {
	if cfg.MaxChars == 0 {
		cfg.MaxChars = truncate.DefaultMaxChars
	}
	if cfg.SnippetChars <= 0 {
		cfg.SnippetChars = DefaultSnippetChars
	}
	if strings.TrimSpace(cfg.Version) == "" {
		cfg.Version = DefaultVersion
	}
	p := &Pipeline{
		cfg:       cfg,
		splitter:  urlinfo.NewSplitter(cfg.Suffixes),
		extractor: cfg.Extractor,
		now:       cfg.Now,
	}
	if p.extractor == nil {
		p.extractor = extract.HeuristicExtractor{}
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// DefaultOptions returns the configured cap with word-safe truncation and
// no prompt template.
func (p *Pipeline) DefaultOptions() Options {
	return Options{MaxChars: p.cfg.MaxChars, WordSafe: true}
}

// Run extracts in. It never fails: every stage degrades to an empty value
// or a documented fallback.
func (p *Pipeline) Run(in Input) Output {
	resolved := urlinfo.Resolve(in.HTML, in.URL)
	domain, site := p.splitter.Split(resolved)

	cleaned := sanitize.Sanitize(in.HTML)
	doc := p.extractor.Extract(cleaned)
	text := textrender.ToText(doc.Section)

	limit := truncate.NormalizeMaxChars(in.Options.MaxChars)
	content := truncate.Apply(text, limit, in.Options.WordSafe)
	snippet := truncate.Apply(content, p.cfg.SnippetChars, in.Options.WordSafe)

	if resolved == "" {
		resolved = urlinfo.Unknown
	}
	res := Result{
		URL:            resolved,
		Domain:         domain,
		SiteName:       site,
		Title:          doc.Title,
		Content:        content,
		ContentSnippet: snippet,
		Author:         doc.Author,
		WordCount:      truncate.WordCount(content),
		Version:        p.cfg.Version,
		ExtractedAt:    p.now().UTC().Format(TimestampLayout),
	}

	log.Debug().
		Int("html_bytes", len(in.HTML)).
		Int("sanitized_bytes", len(cleaned)).
		Int("section_bytes", len(doc.Section)).
		Int("text_bytes", len(text)).
		Int("max_chars", limit).
		Bool("word_safe", in.Options.WordSafe).
		Int("word_count", res.WordCount).
		Str("domain", domain).
		Msg("pipeline: extracted")

	return Output{
		Result: res,
		JSON:   res.JSON(),
		Prompt: template.Render(in.Options.PromptTemplate, res.Placeholders()),
	}
}

// Result is the serializable extraction record. Field order matches the
// JSON key order.
type Result struct {
	URL            string `json:"url"`
	Domain         string `json:"domain"`
	SiteName       string `json:"site_name"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	ContentSnippet string `json:"content_snip"`
	Author         string `json:"author"`
	WordCount      int    `json:"word_count"`
	Version        string `json:"version"`
	ExtractedAt    string `json:"extracted_at"`
}

// JSON serializes r without HTML escaping. Non-ASCII text is written as is.
func (r Result) JSON() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		log.Warn().Err(err).Msg("pipeline: encode result")
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Placeholders maps template field names to their rendered values.
func (r Result) Placeholders() map[string]string {
	return map[string]string{
		"url":             r.URL,
		"domain":          r.Domain,
		"site_name":       r.SiteName,
		"title":           r.Title,
		"content":         r.Content,
		"content_snip":    r.ContentSnippet,
		"content_snippet": r.ContentSnippet,
		"author":          r.Author,
		"word_count":      strconv.Itoa(r.WordCount),
		"version":         r.Version,
		"extracted_at":    r.ExtractedAt,
	}
}

// Output is the fixed tuple handed back to the host.
type Output struct {
	Result Result
	JSON   string
	Prompt string
}

// OutputNames lists the named string outputs in their fixed order.
var OutputNames = []string{"json", "title", "content", "author", "domain", "site_name", "word_count", "prompt"}

// Strings returns the named outputs in OutputNames order.
func (o Output) Strings() []string {
	r := o.Result
	return []string{o.JSON, r.Title, r.Content, r.Author, r.Domain, r.SiteName, strconv.Itoa(r.WordCount), o.Prompt}
}
