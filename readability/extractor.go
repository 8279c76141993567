package readability

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/scraper"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements scraper.Extractor at compile time.
var _ scraper.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content and metadata.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*scraper.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, scraper.Errorf(scraper.EINVALID, "empty HTML input")
	}

	// Relative links stay unresolved when the page URL is unknown.
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		u = nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	var published time.Time
	if article.PublishedTime != nil {
		published = *article.PublishedTime
	}

	var authors []string
	if byline := strings.TrimSpace(article.Byline); byline != "" {
		authors = []string{strings.TrimPrefix(byline, "By ")}
	}

	return &scraper.ExtractResult{
		Title:       article.Title,
		Text:        strings.TrimSpace(article.TextContent),
		ContentHTML: article.Content,
		Authors:     authors,
		PublishDate: published,
		Image:       article.Image,
		Description: article.Excerpt,
		Language:    article.Language,
		SiteName:    article.SiteName,
	}, nil
}
