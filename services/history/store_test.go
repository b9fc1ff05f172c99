package history

import (
	"context"
	"testing"
	"time"

	"dropwatch-backend/lib/scrapers/twitchdrops"
	"dropwatch-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) Store {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "history",
		DbSchema: Schema,
	})
	t.Cleanup(cleanup)
	return NewStore(result.DB)
}

func TestPushAndPullSlug(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	firstRun := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	secondRun := firstRun.Add(30 * time.Minute)

	err := store.Push(ctx, firstRun, []twitchdrops.Campaign{
		{
			Id:        "aaaa",
			GameSlug:  "rust",
			GameName:  "Rust",
			Timeframe: "Jan 10 - Jan 24",
			Rewards:   []string{"Watch 2 hours to earn the drop", "Watch 6 hours to earn more"},
		},
		{
			Id:       "bbbb",
			GameSlug: "hades-ii",
			GameName: "Hades II",
		},
	})
	require.NoError(t, err)

	err = store.Push(ctx, secondRun, []twitchdrops.Campaign{
		{
			Id:        "cccc",
			GameSlug:  "rust",
			GameName:  "Rust",
			Timeframe: "Jan 10 - Jan 31",
			Rewards:   []string{"Watch 2 hours to earn the drop"},
		},
	})
	require.NoError(t, err)

	entries, err := store.PullSlug(ctx, "rust")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// oldest observation first
	require.Equal(t, "aaaa", entries[0].CampaignId)
	require.Equal(t, firstRun, entries[0].ScrapedAt)
	require.Equal(t, "Jan 10 - Jan 24", entries[0].Timeframe)
	require.Equal(t, []string{
		"Watch 2 hours to earn the drop",
		"Watch 6 hours to earn more",
	}, entries[0].Rewards)

	require.Equal(t, "cccc", entries[1].CampaignId)
	require.Equal(t, secondRun, entries[1].ScrapedAt)
}

func TestPullSlugUnknown(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	require.NoError(t, store.Push(ctx, time.Now(), nil))

	entries, err := store.PullSlug(ctx, "nope")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestPushEmptyRewards(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	err := store.Push(ctx, time.Now(), []twitchdrops.Campaign{
		{Id: "aaaa", GameSlug: "rust", GameName: "Rust"},
	})
	require.NoError(t, err)

	entries, err := store.PullSlug(ctx, "rust")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].Rewards)
}
