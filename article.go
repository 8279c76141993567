package scraper

import "context"

// Article is the normalized result of extracting a single web page.
// It is populated field by field at the extraction boundary and is not
// modified afterwards. Lists are never nil; TopImage is nil when the page
// has no top image.
type Article struct {
	URL      string
	Title    string
	Content  string
	TopImage *string
	Authors  []string
	Images   []string
	Movies   []string
	Metadata ArticleMetadata
}

// ArticleMetadata holds the secondary page metadata of an Article.
// Absent values are empty strings or empty lists, never nil.
type ArticleMetadata struct {
	// PublishDate is an ISO-8601 timestamp, or empty when unknown.
	PublishDate     string
	Keywords        []string
	Summary         string
	MetaDescription string
	MetaKeywords    []string
	MetaLang        string
	MetaFavicon     string
	CanonicalLink   string
	Tags            []string
	SourceURL       string
}

// ArticleService extracts articles from web pages.
type ArticleService interface {
	// ExtractArticle downloads the page at url and returns its article.
	// Any failure to fetch or parse the page returns EUNPROCESSABLE.
	// A single fetch is attempted per call.
	ExtractArticle(ctx context.Context, url string) (*Article, error)
}

// ContentFormat selects how Article.Content is rendered.
type ContentFormat string

// ContentFormat constants.
const (
	ContentFormatText     ContentFormat = "text"
	ContentFormatMarkdown ContentFormat = "markdown"
)

// Validate returns an error if the format is not recognized.
func (f ContentFormat) Validate() error {
	switch f {
	case ContentFormatText, ContentFormatMarkdown:
		return nil
	}
	return Errorf(EINVALID, "unknown content format %q", string(f))
}
