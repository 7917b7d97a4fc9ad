package app

import "time"

// Output formats accepted by Config.Format.
const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatFields = "fields"
	FormatPDF    = "pdf"
)

// DefaultMaxInputBytes bounds how much input is read before extraction.
const DefaultMaxInputBytes int64 = 10 << 20

// Config holds runtime configuration for the application.
type Config struct {
	// InputPath is the HTML file to read; "" or "-" reads stdin.
	InputPath string
	// OutputPath is the file to write; "" writes to stdout. Required for pdf.
	OutputPath string
	// URL is the page URL when known; it wins over URLs found in the markup.
	URL string
	// Charset overrides input charset detection, e.g. "windows-1252".
	Charset string
	// Format is one of json, text, fields, pdf. Empty selects json.
	Format string

	// Extraction
	MaxChars      int // 0 selects the default cap, negative disables it
	ExactCut      bool
	SnippetChars  int
	MaxInputBytes int64
	Suffixes      []string

	// Prompt
	PromptTemplate string
	PromptFile     string
	PromptPreset   string

	// LLM
	LLMBaseURL      string
	LLMModel        string
	LLMAPIKey       string
	LLMSystemPrompt string
	LLMTimeout      time.Duration
	LLMCacheOnly    bool

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	Verbose bool
}
