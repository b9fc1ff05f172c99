// Package signals runs lightweight keyword checks over auxiliary
// public pages, catching early mentions of a drops campaign before the
// campaigns page carries it.
package signals

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	"dropwatch-backend/lib/notify"
	"dropwatch-backend/lib/seenstate"
	"dropwatch-backend/lib/textutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/signals")

const maxDetailsLength = 400

type Service struct {
	fetch    Fetcher
	checks   []Checker
	seen     seenstate.Store
	notifier notify.Notifier
}

func NewService(fetch Fetcher, checks []Checker, seen seenstate.Store, notifier notify.Notifier) Service {
	return Service{
		fetch:    fetch,
		checks:   checks,
		seen:     seen,
		notifier: notifier,
	}
}

// items are keyed by their identifying fields so the same hit stays
// quiet across runs even when details shift
func seenKey(item Item) string {
	sum := sha256.Sum256([]byte(item.Source + "|" + item.Title + "|" + item.Url))
	return hex.EncodeToString(sum[:])
}

func composeItemMessage(item Item) string {
	lines := []string{
		"👀 New drops signal",
		"Source: " + item.Source,
		"Title: " + item.Title,
	}
	if item.Details != "" {
		lines = append(lines, "Details: "+textutil.Truncate(item.Details, maxDetailsLength))
	}
	lines = append(lines, "🔗 "+item.Url)
	return strings.Join(lines, "\n")
}

// Run executes every check once. A failing check is logged and
// skipped; the seen set is only saved when something new turned up.
func (s Service) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	seen := s.seen.Load(ctx)

	var fresh []Item
	for _, check := range s.checks {
		items, err := check.Check(ctx, s.fetch)
		if err != nil {
			slog.WarnContext(ctx, "signal check failed", "source", check.Source(), "err", err)
			continue
		}
		for _, item := range items {
			key := seenKey(item)
			if seen[key] {
				continue
			}
			seen[key] = true
			fresh = append(fresh, item)
		}
	}

	if len(fresh) == 0 {
		slog.InfoContext(ctx, "no new signals")
		return nil
	}

	for _, item := range fresh {
		err := s.notifier.Send(ctx, composeItemMessage(item))
		if err != nil {
			slog.WarnContext(ctx, "failed to notify about signal", "source", item.Source, "err", err)
		}
	}

	err := s.seen.Save(ctx, seen)
	if err != nil {
		slog.WarnContext(ctx, "failed to save seen state", "err", err)
	}
	slog.InfoContext(ctx, "delivered signals", "count", len(fresh))
	return nil
}
