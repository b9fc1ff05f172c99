package twitchdrops

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const campaignsPageHtml = `
<html><body>
<div class="drops-root__content abc123">
	<div class="campaign">
		<p>Tom Clancy's Rainbow Six Siege</p>
		<p>R6 Siege Drops Campaign</p>
		<p>Watch 4 hours to earn the Sledge Chibi Charm</p>
		<p>Jan 10 - Jan 24</p>
		<a href="/directory/category/tom-clancys-rainbow-six-siege">Rainbow Six</a>
	</div>
	<div class="campaign">
		<p>Rust</p>
		<p>Watch 2 hours to earn the drop</p>
		<p>Feb 1 - Feb 14</p>
		<a href="https://www.twitch.tv/directory/category/rust">Rust</a>
	</div>
	<div class="filler">ad banner</div>
</div>
</body></html>`

func parseTestDocument(t *testing.T, raw string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestDocumentPage(t *testing.T) {
	ctx := context.Background()
	base, err := url.Parse(DefaultBaseUrl)
	require.NoError(t, err)

	doc := parseTestDocument(t, campaignsPageHtml)
	page := NewDocumentPage(doc, base)

	campaigns := ParseRows(ctx, CollectRows(ctx, page))
	require.Len(t, campaigns, 2)

	require.Equal(t, "tom-clancys-rainbow-six-siege", campaigns[0].GameSlug)
	require.Equal(t, "Tom Clancy's Rainbow Six Siege", campaigns[0].GameName)
	require.Equal(t, "Jan 10 - Jan 24", campaigns[0].Timeframe)

	require.Equal(t, "rust", campaigns[1].GameSlug)
	require.Equal(t, []string{"Watch 2 hours to earn the drop"}, campaigns[1].Rewards)
}

func TestDocumentPageResolvesRelativeLinks(t *testing.T) {
	ctx := context.Background()
	base, err := url.Parse(DefaultBaseUrl)
	require.NoError(t, err)

	page := NewDocumentPage(parseTestDocument(t, campaignsPageHtml), base)
	rows, err := page.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	links, err := rows[0].Links(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.twitch.tv/directory/category/tom-clancys-rainbow-six-siege",
	}, links)
}

func TestDocumentPageFallsBackToBody(t *testing.T) {
	ctx := context.Background()

	raw := `<html><body>
		<div><p>Rust</p><p>Watch 2 hours to earn the drop</p>
		<a href="https://www.twitch.tv/directory/category/rust">Rust</a></div>
	</body></html>`
	page := NewDocumentPage(parseTestDocument(t, raw), nil)

	campaigns := ParseRows(ctx, CollectRows(ctx, page))
	require.Len(t, campaigns, 1)
	require.Equal(t, "rust", campaigns[0].GameSlug)
}
