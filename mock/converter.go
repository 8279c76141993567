package mock

import "github.com/fwojciec/scraper"

var _ scraper.Converter = (*Converter)(nil)

// Converter is a mock implementation of scraper.Converter.
type Converter struct {
	ConvertFn func(html, domain string) (string, error)
}

func (c *Converter) Convert(html, domain string) (string, error) {
	return c.ConvertFn(html, domain)
}
