// Package badgewatch scans a game category's directory page for live
// streams carrying a drops badge and pings the watcher once per stream.
package badgewatch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/url"
	"strings"

	"dropwatch-backend/lib/notify"
	"dropwatch-backend/lib/scrapers/twitchdirectory"
	"dropwatch-backend/lib/seenstate"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/badgewatch")

// cap on notifications per pass so a busy category can't flood the
// channel
const maxNotifications = 10

// DocumentSource yields a category directory page.
// twitchdrops.Client is the live implementation.
type DocumentSource interface {
	CategoryPage(ctx context.Context, slug string) (*goquery.Document, error)
}

type Options struct {
	// category slug to scan, e.g. "tom-clancys-rainbow-six-siege"
	CategorySlug string
	// origin relative stream links resolve against
	BaseUrl string
}

type Service struct {
	source   DocumentSource
	seen     seenstate.Store
	notifier notify.Notifier
	options  Options
}

func NewService(source DocumentSource, seen seenstate.Store, notifier notify.Notifier, options Options) Service {
	if options.BaseUrl == "" {
		options.BaseUrl = "https://www.twitch.tv"
	}
	return Service{
		source:   source,
		seen:     seen,
		notifier: notifier,
		options:  options,
	}
}

func seenKey(streamUrl string) string {
	sum := sha256.Sum256([]byte(streamUrl))
	return hex.EncodeToString(sum[:])
}

func composeStreamMessage(slug string, card twitchdirectory.StreamCard) string {
	return strings.Join([]string{
		"🟣 Drops enabled stream in " + slug,
		"Channel: " + card.Channel,
		"Link: " + card.Url,
		"Snippet: " + card.Snippet,
	}, "\n")
}

// Run performs one scan. Failing to fetch the directory page aborts the
// pass (the seen set is untouched, so the next pass retries cleanly);
// everything past that point is soft.
func (s Service) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	seen := s.seen.Load(ctx)

	doc, err := s.source.CategoryPage(ctx, s.options.CategorySlug)
	if err != nil {
		return err
	}
	base, err := url.Parse(s.options.BaseUrl)
	if err != nil {
		return err
	}

	cards := twitchdirectory.FindDropsStreams(ctx, doc, base)

	var fresh []twitchdirectory.StreamCard
	for _, card := range cards {
		key := seenKey(card.Url)
		if seen[key] {
			continue
		}
		seen[key] = true
		fresh = append(fresh, card)
	}

	if len(fresh) == 0 {
		slog.InfoContext(ctx, "no unseen streams with a drops badge", "category", s.options.CategorySlug)
		return nil
	}

	for _, card := range fresh[:min(len(fresh), maxNotifications)] {
		err := s.notifier.Send(ctx, composeStreamMessage(s.options.CategorySlug, card))
		if err != nil {
			slog.WarnContext(ctx, "failed to notify about stream", "channel", card.Channel, "err", err)
		}
	}

	err = s.seen.Save(ctx, seen)
	if err != nil {
		slog.WarnContext(ctx, "failed to save seen state", "err", err)
	}
	return nil
}
