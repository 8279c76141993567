package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/scraper"
)

// Ensure MetadataExtractor implements scraper.MetadataExtractor at compile time.
var _ scraper.MetadataExtractor = (*MetadataExtractor)(nil)

// videoHosts are the providers whose embeds are reported as movies.
var videoHosts = []string{
	"youtube.com",
	"youtube-nocookie.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
	"kewego.com",
}

// MetadataExtractor reads head metadata, media, and tags with goquery.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata parses rawHTML and returns its page metadata.
// Relative URLs are resolved against pageURL.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string, pageURL string) (*scraper.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, scraper.Errorf(scraper.EINVALID, "empty HTML input")
	}

	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		base = nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse HTML: %v", err)
	}

	return &scraper.PageMetadata{
		Title: firstNonEmpty(
			doc.Find("head title").First().Text(),
			metaContent(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`),
		),
		Description: metaContent(doc,
			`meta[name="description"]`,
			`meta[property="og:description"]`,
			`meta[name="twitter:description"]`,
		),
		Keywords: splitList(metaContent(doc, `meta[name="keywords"]`, `meta[name="news_keywords"]`)),
		Lang:     language(doc),
		Favicon:  resolve(base, doc.Find(`link[rel~="icon"]`).First().AttrOr("href", "")),
		Canonical: resolve(base, firstNonEmpty(
			doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
			metaContent(doc, `meta[property="og:url"]`),
		)),
		TopImage: resolve(base, firstNonEmpty(
			metaContent(doc,
				`meta[property="og:image"]`,
				`meta[property="og:image:url"]`,
				`meta[name="og:image"]`,
				`meta[name="twitter:image"]`,
				`meta[name="twitter:image:src"]`,
				`meta[itemprop="image"]`,
			),
			doc.Find(`link[rel="image_src"]`).First().AttrOr("href", ""),
		)),
		Authors:     authors(doc),
		PublishDate: publishDate(doc),
		Images:      images(doc, base),
		Movies:      movies(doc, base),
		Tags:        tags(doc),
	}, nil
}

// metaContent returns the first non-empty content attribute among selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v
		}
	}
	return ""
}

// language returns the two-letter lower-case page language from the html
// lang attribute or the Content-Language meta header.
func language(doc *goquery.Document) string {
	lang := doc.Find("html").First().AttrOr("lang", "")
	if strings.TrimSpace(lang) == "" {
		doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.EqualFold(s.AttrOr("http-equiv", ""), "content-language") {
				lang = s.AttrOr("content", "")
				return false
			}
			return true
		})
	}
	lang = strings.TrimSpace(lang)
	if len(lang) < 2 {
		return ""
	}
	lang = strings.ToLower(lang[:2])
	for _, r := range lang {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return lang
}

func authors(doc *goquery.Document) []string {
	var out []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		v = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(v, "By "), "by "))
		if v == "" || isAbsoluteURL(v) {
			return
		}
		out = append(out, v)
	}

	for _, sel := range []string{
		`meta[name="author"]`,
		`meta[property="article:author"]`,
		`meta[name="byl"]`,
		`meta[name="dc.creator"]`,
		`meta[name="DC.creator"]`,
	} {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			add(s.AttrOr("content", ""))
		})
	}
	doc.Find(`[itemprop="author"]`).Each(func(_ int, s *goquery.Selection) {
		if name := s.Find(`[itemprop="name"]`).First(); name.Length() > 0 {
			add(firstNonEmpty(name.AttrOr("content", ""), name.Text()))
			return
		}
		add(firstNonEmpty(s.AttrOr("content", ""), s.Text()))
	})
	doc.Find(`a[rel="author"]`).Each(func(_ int, s *goquery.Selection) {
		add(s.Text())
	})
	return dedupe(out)
}

func publishDate(doc *goquery.Document) time.Time {
	value := firstNonEmpty(
		metaContent(doc,
			`meta[property="article:published_time"]`,
			`meta[property="og:published_time"]`,
			`meta[itemprop="datePublished"]`,
			`meta[name="pubdate"]`,
			`meta[name="publishdate"]`,
			`meta[name="date"]`,
			`meta[name="dc.date"]`,
		),
		doc.Find("time[datetime]").First().AttrOr("datetime", ""),
	)
	if value == "" {
		return time.Time{}
	}
	// Values without a zone are read as UTC.
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

func images(doc *goquery.Document, base *url.URL) []string {
	var out []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := firstNonEmpty(s.AttrOr("src", ""), s.AttrOr("data-src", ""))
		if u := resolve(base, src); u != "" {
			out = append(out, u)
		}
	})
	return dedupe(out)
}

// movies returns embeds from known video providers and direct <video> sources.
func movies(doc *goquery.Document, base *url.URL) []string {
	var out []string
	addEmbed := func(src string) {
		if u := resolve(base, src); u != "" && isVideoHost(u) {
			out = append(out, u)
		}
	}

	doc.Find("iframe[src], embed[src]").Each(func(_ int, s *goquery.Selection) {
		addEmbed(s.AttrOr("src", ""))
	})
	doc.Find("object").Each(func(_ int, s *goquery.Selection) {
		addEmbed(s.AttrOr("data", ""))
		addEmbed(s.Find(`param[name="movie"]`).AttrOr("value", ""))
	})
	doc.Find("video[src], video source[src]").Each(func(_ int, s *goquery.Selection) {
		if u := resolve(base, s.AttrOr("src", "")); u != "" {
			out = append(out, u)
		}
	})
	return dedupe(out)
}

// tags returns rel=tag anchors, falling back to anchors whose href looks
// like a tag or topic page. article:tag meta values are always included.
func tags(doc *goquery.Document) []string {
	var out []string
	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr("content", ""))
	})

	anchors := doc.Find(`a[rel="tag"]`)
	if anchors.Length() == 0 {
		anchors = doc.Find(`a[href*="/tag/"], a[href*="/tags/"], a[href*="/topic/"], a[href*="?keyword="]`)
	}
	anchors.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return dedupe(out)
}

func isVideoHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range videoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// resolve returns ref as an absolute URL relative to base. Non-HTTP
// references (javascript:, mailto:, data:) return "".
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || isNonHTTPLink(ref) {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	return u.String()
}

// isNonHTTPLink reports whether href uses a scheme that cannot be fetched.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// splitList splits a comma-separated meta value into trimmed items.
func splitList(s string) []string {
	return dedupe(strings.Split(s, ","))
}

// dedupe trims values and drops empties and duplicates, keeping order.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.Join(strings.Fields(v), " ")
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
