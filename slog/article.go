package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scraper"
)

// Ensure LoggingArticleService implements scraper.ArticleService.
var _ scraper.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   scraper.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next scraper.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// ExtractArticle logs every extraction, at error level when it fails.
func (s *LoggingArticleService) ExtractArticle(ctx context.Context, url string) (a *scraper.Article, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Error("extract article",
				"url", url,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("extract article",
			"url", url,
			"title", a.Title,
			"chars", len([]rune(a.Content)),
			"images", len(a.Images),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.ExtractArticle(ctx, url)
}
