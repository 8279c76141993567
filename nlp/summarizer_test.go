package nlp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/scraper"
	"github.com/fwojciec/scraper/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Summarizer implements scraper.Summarizer at compile time.
var _ scraper.Summarizer = (*nlp.Summarizer)(nil)

const budgetStory = "The city council approved the budget on Tuesday. " +
	"The budget funds new parks and roads. " +
	"Critics said the budget ignores schools. " +
	"Parks advocates praised the council. " +
	"Roads will be repaved next spring. " +
	"The mayor signed the budget quickly. " +
	"Weather was mild."

func TestSummarizer_Keywords(t *testing.T) {
	t.Parallel()

	t.Run("orders keywords by frequency", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en")
		got, err := s.Summarize(context.Background(), "Council approves budget", budgetStory)

		require.NoError(t, err)
		require.Len(t, got.Keywords, nlp.DefaultMaxKeywords)
		assert.Equal(t, []string{"budget", "council", "parks", "roads"}, got.Keywords[:4])
	})

	t.Run("excludes stopwords and short words", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en")
		got, err := s.Summarize(context.Background(), "", budgetStory)

		require.NoError(t, err)
		for _, stop := range []string{"the", "said", "new", "was", "on", "be"} {
			assert.NotContains(t, got.Keywords, stop)
		}
	})

	t.Run("folds case", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en")
		got, err := s.Summarize(context.Background(), "", "Budget talks. BUDGET vote. budget signed.")

		require.NoError(t, err)
		assert.Equal(t, "budget", got.Keywords[0])
	})

	t.Run("respects max keywords", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en", nlp.WithMaxKeywords(2))
		got, err := s.Summarize(context.Background(), "", budgetStory)

		require.NoError(t, err)
		assert.Equal(t, []string{"budget", "council"}, got.Keywords)
	})

	t.Run("uses language stopwords", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("de")
		got, err := s.Summarize(context.Background(), "", "Der Haushalt wurde beschlossen. Der Haushalt ist groß und der Rat ist zufrieden.")

		require.NoError(t, err)
		assert.Equal(t, "haushalt", got.Keywords[0])
		assert.NotContains(t, got.Keywords, "der")
		assert.NotContains(t, got.Keywords, "und")
	})
}

func TestSummarizer_Summary(t *testing.T) {
	t.Parallel()

	t.Run("returns short text whole", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en")
		got, err := s.Summarize(context.Background(), "", "First sentence here. Second sentence here.")

		require.NoError(t, err)
		assert.Equal(t, "First sentence here. Second sentence here.", got.Text)
	})

	t.Run("keeps sentence order", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en", nlp.WithMaxSentences(3))
		got, err := s.Summarize(context.Background(), "Council approves budget", budgetStory)

		require.NoError(t, err)
		sentences := strings.SplitAfter(got.Text, ". ")
		require.Len(t, sentences, 3)
		last := -1
		for _, sentence := range sentences {
			pos := strings.Index(budgetStory, strings.TrimSpace(sentence))
			require.GreaterOrEqual(t, pos, 0, "sentence %q not in source", sentence)
			assert.Greater(t, pos, last)
			last = pos
		}
	})

	t.Run("prefers sentences sharing title words", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en", nlp.WithMaxSentences(1))
		got, err := s.Summarize(context.Background(), "Council approves budget", budgetStory)

		require.NoError(t, err)
		assert.Equal(t, "The city council approved the budget on Tuesday.", got.Text)
	})

	t.Run("does not split sentences at abbreviations", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en", nlp.WithMaxSentences(1))
		got, err := s.Summarize(context.Background(), "", "Mr. Smith met U.S. officials in Washington. Later he left.")

		require.NoError(t, err)
		assert.Equal(t, "Mr. Smith met U.S. officials in Washington.", got.Text)
	})

	t.Run("defaults to five sentences", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en")
		got, err := s.Summarize(context.Background(), "", budgetStory)

		require.NoError(t, err)
		assert.Len(t, strings.SplitAfter(got.Text, ". "), nlp.DefaultMaxSentences)
	})

	t.Run("returns error for empty text", func(t *testing.T) {
		t.Parallel()

		s := nlp.NewSummarizer("en")
		_, err := s.Summarize(context.Background(), "Title", "   ")

		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})
}
