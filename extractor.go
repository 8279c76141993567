package scraper

import "time"

// ExtractResult holds the main content of an HTML page together with the
// metadata the boilerplate-removal engine discovered along the way.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as plain text, paragraphs separated by
	// blank lines.
	Text string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	Authors     []string
	PublishDate time.Time
	Image       string
	Description string
	Language    string
	SiteName    string
	Tags        []string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL and returns the main
	// content. pageURL is used to resolve relative links.
	Extract(html string, pageURL string) (*ExtractResult, error)
}
