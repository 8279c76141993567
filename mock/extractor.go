package mock

import "github.com/fwojciec/scraper"

var _ scraper.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scraper.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*scraper.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*scraper.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
