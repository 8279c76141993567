package scraper

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor). Relative
	// links resolve against domain, the page origin; empty leaves them as is.
	Convert(html, domain string) (string, error)
}
