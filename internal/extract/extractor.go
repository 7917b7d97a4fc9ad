package extract

// Extractor defines a minimal interface for content extraction strategies.
// Implementations can swap selection tactics without changing callers.
type Extractor interface {
	// Extract turns a sanitized HTML document into a Document.
	// Implementations must be deterministic and free of side effects.
	Extract(sanitized string) Document
}

// HeuristicExtractor uses FromHTML: first-match article/main/content-div
// candidates, the longest one winning, with prioritized title and author
// patterns.
type HeuristicExtractor struct{}

func (HeuristicExtractor) Extract(sanitized string) Document {
	return FromHTML(sanitized)
}
