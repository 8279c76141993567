package scraper

import "time"

// PageMetadata holds metadata read from the document head and markup:
// meta tags, link relations, media elements, and tag anchors.
// All URLs are absolute.
type PageMetadata struct {
	Title       string
	Description string
	Keywords    []string
	// Lang is a two-letter lower-case language code.
	Lang        string
	Favicon     string
	Canonical   string
	TopImage    string
	Authors     []string
	PublishDate time.Time
	Images      []string
	Movies      []string
	Tags        []string
}

// MetadataExtractor reads page metadata from raw HTML.
type MetadataExtractor interface {
	ExtractMetadata(html string, pageURL string) (*PageMetadata, error)
}
