package extract

// Document is the article data pulled from a sanitized page: the chosen
// content section as raw HTML plus the cleaned title and author.
type Document struct {
	Title   string
	Author  string
	Section string
}

// FromHTML selects the content section and extracts title and author.
// The input is expected to be sanitized already; title and author are
// searched in the whole document, not only the section.
func FromHTML(sanitized string) Document {
	return Document{
		Title:   Title(sanitized),
		Author:  Author(sanitized),
		Section: SelectSection(sanitized),
	}
}
