package mock

import "github.com/fwojciec/scraper"

var _ scraper.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of scraper.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html, pageURL string) (*scraper.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html, pageURL string) (*scraper.PageMetadata, error) {
	return e.ExtractMetadataFn(html, pageURL)
}
