package readability_test

import (
	"testing"

	"github.com/fwojciec/scraper"
	"github.com/fwojciec/scraper/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements scraper.Extractor at compile time.
var _ scraper.Extractor = (*readability.Extractor)(nil)

const story = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Storm Closes Coastal Highway</title>
<meta property="og:site_name" content="Example Herald">
<meta property="og:image" content="/images/storm.jpg">
<meta name="description" content="Officials closed the highway after waves breached the sea wall.">
</head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/weather">Weather Nav Link</a></nav>
<article>
<h1>Storm Closes Coastal Highway</h1>
<p class="byline">By Sam Rivera</p>
<p>State officials closed a twelve-mile stretch of the coastal highway on Friday after waves breached the sea wall in several places overnight.</p>
<p>Crews expect to reopen one lane by Sunday, though the full repair could take weeks depending on the weather over the coming days.</p>
<p>Drivers are being diverted through the inland route, which adds roughly forty minutes to the trip between the two towns.</p>
</article>
<footer>Example Herald footer links</footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("", "https://example.com/article")

	require.Error(t, err)
	assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(story, "https://herald.example.com/storm")

	require.NoError(t, err)
	assert.Equal(t, "Storm Closes Coastal Highway", result.Title)
}

func TestExtractor_ExtractsText(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(story, "https://herald.example.com/storm")

	require.NoError(t, err)
	assert.Contains(t, result.Text, "waves breached the sea wall")
	assert.Contains(t, result.ContentHTML, "inland route")
}

func TestExtractor_RemovesNavigation(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(story, "https://herald.example.com/storm")

	require.NoError(t, err)
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.Text, "Weather Nav Link")
}

func TestExtractor_ExtractsSiteMetadata(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(story, "https://herald.example.com/storm")

	require.NoError(t, err)
	assert.Equal(t, "Example Herald", result.SiteName)
	assert.Contains(t, result.Description, "waves breached the sea wall")
	assert.Contains(t, result.Image, "/images/storm.jpg")
}

func TestExtractor_HandlesUnknownPageURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(story, "")

	require.NoError(t, err)
	assert.Contains(t, result.Text, "inland route")
}
