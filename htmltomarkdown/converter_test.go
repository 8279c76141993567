package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/scraper"
	"github.com/fwojciec/scraper/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements scraper.Converter at compile time.
var _ scraper.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts article body", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h2>Council approves budget</h2>
<p>The council voted <strong>7 to 2</strong> on Tuesday, <em>ending</em> weeks of debate.</p>
<blockquote><p>This is a responsible plan.</p></blockquote>
<ul><li>Roads</li><li>Schools</li></ul>
<p>Read the <a href="https://example.com/budget.pdf">full budget</a>.</p>
</div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "## Council approves budget")
		assert.Contains(t, md, "**7 to 2**")
		assert.Contains(t, md, "*ending*")
		assert.Contains(t, md, "> This is a responsible plan.")
		assert.Contains(t, md, "- Roads")
		assert.Contains(t, md, "- Schools")
		assert.Contains(t, md, "[full budget](https://example.com/budget.pdf)")
	})

	t.Run("converts strikethrough corrections", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Turnout was <del>40%</del> 45%.</p>`, "")

		require.NoError(t, err)
		assert.Contains(t, md, "~~40%~~")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Department</th><th>Budget</th></tr></thead>
<tbody><tr><td>Parks</td><td>$2M</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "Department")
		assert.Contains(t, md, "Parks")
		assert.Contains(t, md, "|")
	})

	t.Run("resolves relative links against domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See <a href="/politics/budget">earlier coverage</a>.</p>`, "https://news.example.com")

		require.NoError(t, err)
		assert.Contains(t, md, "[earlier coverage](https://news.example.com/politics/budget)")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("\n\n<p>Body.</p>\n\n", "")

		require.NoError(t, err)
		assert.Equal(t, "Body.", md)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ", "")

		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})
}
