package dropwatch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"dropwatch-backend/lib/scrapers/twitchdrops"

	"github.com/stretchr/testify/require"
)

type staticRow struct {
	text  string
	links []string
}

func (r staticRow) Expand(ctx context.Context) error { return nil }

func (r staticRow) Text(ctx context.Context) (string, error) { return r.text, nil }

func (r staticRow) Links(ctx context.Context) ([]string, error) { return r.links, nil }

type staticPage struct {
	rows []twitchdrops.Row
}

func (p staticPage) ScrollHeight(ctx context.Context) (int, error) { return len(p.rows), nil }

func (p staticPage) Scroll(ctx context.Context, dy int) error { return nil }

func (p staticPage) Rows(ctx context.Context) ([]twitchdrops.Row, error) { return p.rows, nil }

type fakePageSource struct {
	page twitchdrops.Page
	err  error
}

func (s *fakePageSource) CampaignsPage(ctx context.Context) (twitchdrops.Page, error) {
	return s.page, s.err
}

type fakeRecorder struct {
	pushes [][]twitchdrops.Campaign
	err    error
}

func (r *fakeRecorder) Push(ctx context.Context, at time.Time, campaigns []twitchdrops.Campaign) error {
	if r.err != nil {
		return r.err
	}
	r.pushes = append(r.pushes, campaigns)
	return nil
}

func r6Page() staticPage {
	return staticPage{rows: []twitchdrops.Row{
		staticRow{
			text: "Tom Clancy's Rainbow Six Siege\nWatch 4 hours to earn the Sledge Chibi Charm\nJan 10 - Jan 24",
			links: []string{
				"https://www.twitch.tv/directory/category/tom-clancys-rainbow-six-siege",
			},
		},
		staticRow{
			text:  "Rust\nWatch 2 hours to earn the drop\nFeb 1 - Feb 14",
			links: []string{"https://www.twitch.tv/directory/category/rust"},
		},
	}}
}

func TestServiceFirstRunReportsEverythingAdded(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	recorder := &fakeRecorder{}
	store := NewFileStore(filepath.Join(t.TempDir(), "campaigns.json"))

	service := NewService(&fakePageSource{page: r6Page()}, store, notifier, recorder, Options{
		WatchSlugs: map[string]bool{"tom-clancys-rainbow-six-siege": true},
	})

	result, err := service.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Added, 2)
	require.Empty(t, result.Removed)

	// only the watched game makes it into the digest
	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], "New: 1")
	require.Contains(t, notifier.messages[0], "Tom Clancy's Rainbow Six Siege")
	require.NotContains(t, notifier.messages[0], "• Rust")

	require.Len(t, recorder.pushes, 1)
	require.Len(t, recorder.pushes[0], 2)

	// the snapshot is persisted for the next pass
	require.Equal(t, 2, store.Load(ctx).Count)
}

func TestServiceSteadyStateStaysQuiet(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	store := NewFileStore(filepath.Join(t.TempDir(), "campaigns.json"))

	service := NewService(&fakePageSource{page: r6Page()}, store, notifier, nil, Options{
		WatchSlugs: map[string]bool{"tom-clancys-rainbow-six-siege": true},
	})

	_, err := service.Run(ctx)
	require.NoError(t, err)
	require.Len(t, notifier.messages, 1)

	// second pass over identical content: empty diff, no message
	result, err := service.Run(ctx)
	require.NoError(t, err)
	require.True(t, result.Empty())
	require.Len(t, notifier.messages, 1)
}

func TestServicePageFailurePreservesPriorSnapshot(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	store := NewFileStore(filepath.Join(t.TempDir(), "campaigns.json"))
	source := &fakePageSource{page: r6Page()}

	service := NewService(source, store, notifier, nil, Options{
		WatchSlugs: map[string]bool{"rust": true},
	})

	_, err := service.Run(ctx)
	require.NoError(t, err)

	// the page goes away; the pass aborts and the stored snapshot
	// stays what it was, so the eventual retry diffs cleanly
	source.page, source.err = nil, errors.New("cloudflare said no")
	_, err = service.Run(ctx)
	require.Error(t, err)
	require.Equal(t, 2, store.Load(ctx).Count)

	source.page, source.err = r6Page(), nil
	result, err := service.Run(ctx)
	require.NoError(t, err)
	require.True(t, result.Empty())
}

func TestServiceHistoryFailureIsSoft(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "campaigns.json"))
	recorder := &fakeRecorder{err: errors.New("db is locked")}

	service := NewService(&fakePageSource{page: r6Page()}, store, &fakeNotifier{}, recorder, Options{})

	_, err := service.Run(ctx)
	require.NoError(t, err)
}

func TestServiceDefaultWatchSet(t *testing.T) {
	service := NewService(&fakePageSource{}, NewFileStore("x"), &fakeNotifier{}, nil, Options{})
	require.Equal(t, map[string]bool{DefaultWatchSlug: true}, service.watch)

	// an explicit empty set is kept as-is
	service = NewService(&fakePageSource{}, NewFileStore("x"), &fakeNotifier{}, nil, Options{
		WatchSlugs: map[string]bool{},
	})
	require.Empty(t, service.watch)
}
