package scraper

import "context"

// Summary holds the keywords and the short summary of an article text.
type Summary struct {
	Keywords []string
	Text     string
}

// Summarizer condenses article text into keywords and a short summary.
type Summarizer interface {
	// Summarize returns the keywords and summary of text.
	// Returns EINVALID if text is empty.
	Summarize(ctx context.Context, title, text string) (*Summary, error)
}
