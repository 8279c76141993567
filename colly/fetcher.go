// Package colly implements scraper.Fetcher on top of the colly scraping
// framework.
package colly

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/scraper"
	"github.com/gocolly/colly/v2"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 10 * time.Second

// Ensure Fetcher implements scraper.Fetcher at compile time.
var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with a colly collector. A fresh collector is built
// per call so visited-URL state never leaks between requests.
type Fetcher struct {
	userAgent   string
	timeout     time.Duration
	maxBodySize int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize caps the number of bytes read from a response. Larger
// pages are rejected. Zero keeps colly's own limit.
func WithMaxBodySize(n int) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new colly-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the HTML content of url, converted to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.DetectCharset(),
		colly.AllowURLRevisit(),
	}
	if f.userAgent != "" {
		opts = append(opts, colly.UserAgent(f.userAgent))
	}
	if f.maxBodySize > 0 {
		// One extra byte tells an oversized page from one exactly at the cap.
		opts = append(opts, colly.MaxBodySize(f.maxBodySize+1))
	}

	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(f.timeout)

	var (
		body    string
		status  int
		respErr error
	)
	c.OnResponse(func(r *colly.Response) {
		if ct := r.Headers.Get("Content-Type"); !isHTMLContentType(ct) {
			respErr = fmt.Errorf("unsupported content type %q for %s", ct, url)
			return
		}
		if f.maxBodySize > 0 && len(r.Body) > f.maxBodySize {
			respErr = fmt.Errorf("response body exceeds %d bytes for %s", f.maxBodySize, url)
			return
		}
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
	})

	if err := c.Visit(url); err != nil {
		if status != 0 {
			return "", fmt.Errorf("HTTP %d for %s", status, url)
		}
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if respErr != nil {
		return "", respErr
	}
	return body, nil
}

// Close is a no-op; collectors are discarded after each call.
func (f *Fetcher) Close() error {
	return nil
}

// isHTMLContentType accepts HTML, XHTML, and a missing content type.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return ct == "" ||
		strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "application/xhtml+xml")
}
