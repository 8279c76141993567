package mock

import (
	"context"

	"github.com/fwojciec/scraper"
)

var _ scraper.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of scraper.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, title, text string) (*scraper.Summary, error)
}

func (s *Summarizer) Summarize(ctx context.Context, title, text string) (*scraper.Summary, error) {
	return s.SummarizeFn(ctx, title, text)
}
