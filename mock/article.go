package mock

import (
	"context"

	"github.com/fwojciec/scraper"
)

var _ scraper.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of scraper.ArticleService.
type ArticleService struct {
	ExtractArticleFn func(ctx context.Context, url string) (*scraper.Article, error)
}

func (s *ArticleService) ExtractArticle(ctx context.Context, url string) (*scraper.Article, error) {
	return s.ExtractArticleFn(ctx, url)
}
