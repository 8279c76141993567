package scraper

import "context"

// Fetcher downloads the HTML of a web page.
// Implementations may use a plain HTTP client, a scraping collector, or
// browser automation for JavaScript-rendered pages.
type Fetcher interface {
	// Fetch performs a single request for url and returns the page HTML
	// decoded to UTF-8. It never retries.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
