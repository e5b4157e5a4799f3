package futuretools

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const newlyAddedPage = `<html><body>
<div class="tool-item-columns-new">
  <a class="tool-item-link---new">Acme AI</a>
  <div class="tool-item-description-box---new">Great tool</div>
  <a class="link-block-7">Writing</a>
  <a class="tool-item-link-block---new" href="/tools/acme-ai"></a>
</div>
<div class="tool-item-columns-new">
  <a class="tool-item-link---new">No Link Tool</a>
</div>
<div class="tool-item-columns-new">
  <a class="tool-item-link---new">Beta Writer</a>
  <div class="tool-item-description-box---new">Writes things</div>
  <a class="tool-item-link-block---new" href="https://www.futuretools.io/tools/beta-writer"></a>
</div>
</body></html>`

const toolPage = `<html><body>
<a class="link-block-2" href="https://track.example/acme"></a>
<div class="rich-text-block w-richtext">
  A much longer
  description.
</div>
</body></html>`

func TestParseNewlyAdded(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(newlyAddedPage))
	require.NoError(t, err)

	cards := parseNewlyAdded(context.Background(), doc, "https://www.futuretools.io")
	require.Len(t, cards, 2)

	require.Equal(t, "Acme AI", cards[0].name)
	require.Equal(t, "Great tool", cards[0].shortDescription)
	require.Equal(t, "Writing", cards[0].category)
	require.Equal(t, "https://www.futuretools.io/tools/acme-ai", cards[0].toolPageUrl)

	// card without a tool page link is skipped
	require.Equal(t, "Beta Writer", cards[1].name)
	require.Equal(t, "https://www.futuretools.io/tools/beta-writer", cards[1].toolPageUrl)
}

func TestParseToolPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(toolPage))
	require.NoError(t, err)

	redirectUrl, fullDescription := parseToolPage(doc)
	require.Equal(t, "https://track.example/acme", redirectUrl)
	require.Equal(t, "A much longer description.", fullDescription)
}

func TestParseToolPageEmpty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	redirectUrl, fullDescription := parseToolPage(doc)
	require.Equal(t, "", redirectUrl)
	require.Equal(t, "", fullDescription)
}
