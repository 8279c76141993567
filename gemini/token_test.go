//go:build integration

package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/scraper/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	// Use a real model name that the tokenizer supports
	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		count, err := tc.CountTokens(ctx, "Hello, world!")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		count, err := tc.CountTokens(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "Hello")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, "Hello, this is a much longer piece of text that should have more tokens than just a single word.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})

	t.Run("truncate keeps short text", func(t *testing.T) {
		t.Parallel()

		got, err := tc.Truncate(context.Background(), "A short article.", 100)

		require.NoError(t, err)
		assert.Equal(t, "A short article.", got)
	})

	t.Run("truncate shortens long text at a word boundary", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		long := strings.Repeat("The council met again on Tuesday evening. ", 200)
		got, err := tc.Truncate(ctx, long, 50)
		require.NoError(t, err)

		assert.Less(t, len(got), len(long))
		assert.True(t, strings.HasPrefix(long, got))
		count, err := tc.CountTokens(ctx, got)
		require.NoError(t, err)
		assert.LessOrEqual(t, count, 50)
	})
}
