package twitchdrops

import (
	"context"
	"log/slog"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/twitchdrops")

// Row is one rendered campaign row. Any method may fail on a live page;
// the extractor treats every failure as soft and keeps going.
type Row interface {
	// triggers the row's "expand details" affordance, best-effort
	Expand(ctx context.Context) error
	// the row's visible text with line breaks preserved
	Text(ctx context.Context) (string, error)
	// outbound link urls, resolved absolute against the page origin
	Links(ctx context.Context) ([]string, error)
}

// Page is the narrow boundary to whatever renders the campaigns page
// (a live browser session, a pre-rendered document, a test fake).
type Page interface {
	ScrollHeight(ctx context.Context) (int, error)
	Scroll(ctx context.Context, dy int) error
	Rows(ctx context.Context) ([]Row, error)
}

const scrollStep = 3200
const scrollJitter = 800

// GentleScroll nudges the page down a fixed number of times to get lazy
// row lists loading.
func GentleScroll(ctx context.Context, page Page, steps int) {
	for i := 0; i < steps; i++ {
		dy := scrollStep
		if jitter, err := random.IntRange(0, scrollJitter); err == nil {
			dy += jitter
		}
		if err := page.Scroll(ctx, dy); err != nil {
			slog.DebugContext(ctx, "scroll step failed", "step", i, "err", err)
			return
		}
	}
}

// ScrollToEnd keeps scrolling until the page's scrollable height stops
// growing, with a hard cap on steps so a page that never settles can't
// hold the run hostage.
func ScrollToEnd(ctx context.Context, page Page, maxSteps int) {
	last := -1
	for i := 0; i < maxSteps; i++ {
		h, err := page.ScrollHeight(ctx)
		if err != nil {
			slog.DebugContext(ctx, "failed to read scroll height", "err", err)
			return
		}
		if h <= last {
			return
		}
		last = h
		dy := scrollStep
		if jitter, err := random.IntRange(0, scrollJitter); err == nil {
			dy += jitter
		}
		if err := page.Scroll(ctx, dy); err != nil {
			slog.DebugContext(ctx, "scroll step failed", "step", i, "err", err)
			return
		}
	}
}

// RawRow is what the extractor hands the parser: one row's visible text
// and its outbound links.
type RawRow struct {
	Text  string
	Links []string
}

// CollectRows loads the full row set (scrolling until the page
// stabilizes), expands each row and reads its text and links. A row
// that can't be read is dropped; nothing here ever fails the run.
func CollectRows(ctx context.Context, page Page) []RawRow {
	ctx, span := tracer.Start(ctx, "CollectRows")
	defer span.End()

	GentleScroll(ctx, page, 8)
	ScrollToEnd(ctx, page, 30)

	rows, err := page.Rows(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to enumerate campaign rows", "err", err)
		return nil
	}
	slog.DebugContext(ctx, "enumerated campaign rows", "count", len(rows))

	var out []RawRow
	for i, row := range rows {
		if err := row.Expand(ctx); err != nil {
			slog.DebugContext(ctx, "failed to expand row", "row", i, "err", err)
		}
		text, err := row.Text(ctx)
		if err != nil {
			slog.DebugContext(ctx, "failed to read row text", "row", i, "err", err)
			text = ""
		}
		links, err := row.Links(ctx)
		if err != nil {
			slog.DebugContext(ctx, "failed to read row links", "row", i, "err", err)
			links = nil
		}
		out = append(out, RawRow{Text: text, Links: links})
	}
	return out
}

// ParseRows runs the campaign parser over every collected row,
// discarding insufficient-signal rows.
func ParseRows(ctx context.Context, rows []RawRow) []Campaign {
	var out []Campaign
	for _, row := range rows {
		campaign, ok := ParseRow(row.Text, row.Links)
		if !ok {
			continue
		}
		out = append(out, campaign)
	}
	slog.DebugContext(ctx, "parsed campaign rows", "rows", len(rows), "campaigns", len(out))
	return out
}
