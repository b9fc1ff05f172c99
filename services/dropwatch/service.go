// Package dropwatch runs the campaign watch pipeline: extract rows from
// the rendered drops page, parse them into campaigns, compare against
// the prior run's snapshot and tell the watcher what changed.
package dropwatch

import (
	"context"
	"log/slog"
	"time"

	"dropwatch-backend/lib/notify"
	"dropwatch-backend/lib/scrapers/twitchdrops"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/dropwatch")

// PageSource yields a ready-to-query rendered campaigns page.
// twitchdrops.Client is the live implementation.
type PageSource interface {
	CampaignsPage(ctx context.Context) (twitchdrops.Page, error)
}

// HistoryRecorder archives each run's campaign set. Optional; a nil
// recorder disables archiving.
type HistoryRecorder interface {
	Push(ctx context.Context, at time.Time, campaigns []twitchdrops.Campaign) error
}

type Options struct {
	// lowercase game slugs the caller cares about
	WatchSlugs map[string]bool
}

type Service struct {
	pages    PageSource
	store    SnapshotStore
	notifier notify.Notifier
	history  HistoryRecorder
	watch    map[string]bool
}

func NewService(pages PageSource, store SnapshotStore, notifier notify.Notifier, history HistoryRecorder, options Options) Service {
	// nil means unconfigured and gets the default; an empty set is a
	// deliberate "watch nothing"
	watch := options.WatchSlugs
	if watch == nil {
		watch = map[string]bool{DefaultWatchSlug: true}
	}
	return Service{
		pages:    pages,
		store:    store,
		notifier: notifier,
		history:  history,
		watch:    watch,
	}
}

// Scrape performs one full extraction of the campaigns page.
func (s Service) Scrape(ctx context.Context) (twitchdrops.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	page, err := s.pages.CampaignsPage(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to acquire campaigns page")
		return twitchdrops.Snapshot{}, err
	}

	rows := twitchdrops.CollectRows(ctx, page)
	campaigns := twitchdrops.ParseRows(ctx, rows)
	deduped := twitchdrops.Dedup(campaigns)

	return twitchdrops.NewSnapshot(time.Now(), deduped), nil
}

// Run executes one pipeline pass. Failing to acquire the page aborts
// the pass before the snapshot is overwritten, so the next pass diffs
// against the same prior state; every later failure is soft.
func (s Service) Run(ctx context.Context) (DiffResult, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	prior := s.store.Load(ctx)

	snapshot, err := s.Scrape(ctx)
	if err != nil {
		return DiffResult{}, err
	}
	slog.InfoContext(ctx, "scraped campaigns", "count", snapshot.Count, "prior", prior.Count)

	// saved unconditionally so the next run always compares against
	// the freshest extraction
	err = s.store.Save(ctx, snapshot)
	if err != nil {
		slog.WarnContext(ctx, "failed to save snapshot", "err", err)
	}

	result := Diff(ctx, prior, snapshot)

	if s.history != nil {
		err = s.history.Push(ctx, time.Now(), snapshot.Campaigns)
		if err != nil {
			slog.WarnContext(ctx, "failed to record run history", "err", err)
		}
	}

	Notify(ctx, result, s.watch, s.notifier)
	return result, nil
}
