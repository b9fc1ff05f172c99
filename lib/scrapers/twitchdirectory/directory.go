package twitchdirectory

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"dropwatch-backend/lib/htmlutil"
	"dropwatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/twitchdirectory")

// some UIs label the badge "Drops", others "Drops Enabled"
var dropsBadgeRegex = regexp.MustCompile(`(?i)\bdrops\b`)

const snippetLength = 160

// StreamCard is one live-stream card on a category directory page that
// advertises drops.
type StreamCard struct {
	Url     string
	Channel string
	Snippet string
}

// FindDropsStreams scans every stream card on a directory page and
// keeps the ones whose text carries a drops badge. Cards link to the
// channel; the channel name is the url's last path segment.
func FindDropsStreams(ctx context.Context, doc *goquery.Document, base *url.URL) []StreamCard {
	ctx, span := tracer.Start(ctx, "FindDropsStreams")
	defer span.End()

	seen := map[string]bool{}
	var cards []StreamCard

	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a[href]"), base) {
		if anchor.Name == "" || !dropsBadgeRegex.MatchString(anchor.Name) {
			continue
		}
		link, err := url.Parse(anchor.Href)
		if err != nil {
			continue
		}
		channel := strings.Trim(link.Path, "/")
		if channel == "" || strings.Contains(channel, "/") {
			// not a channel page link
			continue
		}
		if seen[anchor.Href] {
			continue
		}
		seen[anchor.Href] = true

		cards = append(cards, StreamCard{
			Url:     anchor.Href,
			Channel: channel,
			Snippet: textutil.Truncate(textutil.CollapseSpaces(anchor.Name), snippetLength),
		})
	}
	return cards
}
