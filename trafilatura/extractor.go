package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/scraper"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements scraper.Extractor at compile time.
var _ scraper.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	// IncludeImages keeps <img> elements in the content HTML.
	IncludeImages bool
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{IncludeImages: true}
}

// Extract processes raw HTML and returns the main content and metadata.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*scraper.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, scraper.Errorf(scraper.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  e.IncludeImages,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	meta := result.Metadata
	return &scraper.ExtractResult{
		Title:       meta.Title,
		Text:        strings.TrimSpace(result.ContentText),
		ContentHTML: contentHTML,
		Authors:     splitAuthors(meta.Author),
		PublishDate: meta.Date,
		Image:       meta.Image,
		Description: meta.Description,
		Language:    meta.Language,
		SiteName:    meta.Sitename,
		Tags:        append(append([]string{}, meta.Categories...), meta.Tags...),
	}, nil
}

// splitAuthors splits the "; "-joined author string trafilatura produces.
func splitAuthors(s string) []string {
	var authors []string
	for _, a := range strings.Split(s, ";") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
