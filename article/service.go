// Package article implements scraper.ArticleService by composing a Fetcher,
// an Extractor, and a MetadataExtractor into a single extraction call, and
// normalizing their results into a scraper.Article.
package article

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/scraper"
)

// Ensure Service implements scraper.ArticleService at compile time.
var _ scraper.ArticleService = (*Service)(nil)

// Service extracts articles using the configured collaborators.
// Service holds no mutable state and is safe for concurrent use.
type Service struct {
	Fetcher   scraper.Fetcher
	Extractor scraper.Extractor
	Metadata  scraper.MetadataExtractor

	// Optional collaborators. Nil disables the step.
	Summarizer scraper.Summarizer
	Converter  scraper.Converter
	Limiter    scraper.DomainLimiter

	// ContentFormat selects plain text or Markdown content.
	// Defaults to scraper.ContentFormatText.
	ContentFormat scraper.ContentFormat

	// Language is the configured article language, reported as meta_lang
	// when the page declares none.
	Language string
}

// ExtractArticle downloads the page at rawURL and returns its article.
func (s *Service) ExtractArticle(ctx context.Context, rawURL string) (a *scraper.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, scraper.Errorf(scraper.EUNPROCESSABLE, "Unexpected error: %v", r)
		}
	}()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, extractionFailed(err)
	}
	if u.Host == "" {
		return nil, extractionFailed(fmt.Errorf("invalid URL %q: no host supplied", rawURL))
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, extractionFailed(err)
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, extractionFailed(err)
	}

	content, err := s.Extractor.Extract(html, rawURL)
	if err != nil {
		return nil, extractionFailed(err)
	}

	meta, err := s.Metadata.ExtractMetadata(html, rawURL)
	if err != nil {
		return nil, extractionFailed(err)
	}

	origin := u.Scheme + "://" + u.Host

	text := content.Text
	if s.ContentFormat == scraper.ContentFormatMarkdown && s.Converter != nil && strings.TrimSpace(content.ContentHTML) != "" {
		if text, err = s.Converter.Convert(content.ContentHTML, origin); err != nil {
			return nil, extractionFailed(err)
		}
	}

	title := firstNonEmpty(content.Title, meta.Title)

	summary := &scraper.Summary{}
	if s.Summarizer != nil && strings.TrimSpace(content.Text) != "" {
		if summary, err = s.Summarizer.Summarize(ctx, title, content.Text); err != nil {
			return nil, extractionFailed(err)
		}
	}

	a = build(origin, rawURL, title, text, content, meta, summary)
	if a.Metadata.MetaLang == "" {
		a.Metadata.MetaLang = strings.ToLower(strings.TrimSpace(s.Language))
	}
	return a, nil
}

// build merges the collaborator results into an Article. Extractor values
// take precedence for content fields, metadata values for head fields.
func build(origin, rawURL, title, text string, content *scraper.ExtractResult, meta *scraper.PageMetadata, summary *scraper.Summary) *scraper.Article {
	var topImage *string
	if img := firstNonEmpty(meta.TopImage, content.Image); img != "" {
		topImage = &img
	}

	authors := content.Authors
	if len(compact(authors)) == 0 {
		authors = meta.Authors
	}

	images := compact(meta.Images)
	if topImage != nil && !slices.Contains(images, *topImage) {
		images = append([]string{*topImage}, images...)
	}

	publishDate := content.PublishDate
	if publishDate.IsZero() {
		publishDate = meta.PublishDate
	}

	return &scraper.Article{
		URL:      rawURL,
		Title:    title,
		Content:  text,
		TopImage: topImage,
		Authors:  compact(authors),
		Images:   images,
		Movies:   compact(meta.Movies),
		Metadata: scraper.ArticleMetadata{
			PublishDate:     formatDate(publishDate),
			Keywords:        compact(summary.Keywords),
			Summary:         summary.Text,
			MetaDescription: firstNonEmpty(meta.Description, content.Description),
			MetaKeywords:    compact(meta.Keywords),
			MetaLang:        firstNonEmpty(meta.Lang, content.Language),
			MetaFavicon:     meta.Favicon,
			CanonicalLink:   meta.Canonical,
			Tags:            compact(append(append([]string{}, meta.Tags...), content.Tags...)),
			SourceURL:       origin,
		},
	}
}

func extractionFailed(err error) error {
	return scraper.Errorf(scraper.EUNPROCESSABLE, "Failed to extract article: %v", err)
}

// formatDate renders t as ISO-8601, or "" for the zero time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// compact trims values and drops empties and duplicates, keeping first
// occurrence order. The result is never nil.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
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
