package dropwatch

import (
	"context"
	"log/slog"
	"slices"

	"dropwatch-backend/lib/scrapers/twitchdrops"
)

// DiffResult classifies every campaign across two snapshots by id.
type DiffResult struct {
	Added   []twitchdrops.Campaign
	Removed []twitchdrops.Campaign
	Changed []twitchdrops.Campaign
}

func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff indexes both snapshots by campaign id. Added/removed keep their
// snapshot order. A campaign counts as changed when its id survives but
// its timeframe or reward list differs. Since the id already encodes
// both fields, that branch only fires on an id truncation collision, so
// it is logged when it happens. An update to a live campaign normally
// surfaces as a removed+added pair sharing a game slug instead.
func Diff(ctx context.Context, old, new twitchdrops.Snapshot) DiffResult {
	oldById := make(map[string]twitchdrops.Campaign, len(old.Campaigns))
	for _, c := range old.Campaigns {
		oldById[c.Id] = c
	}
	newById := make(map[string]twitchdrops.Campaign, len(new.Campaigns))
	for _, c := range new.Campaigns {
		newById[c.Id] = c
	}

	var result DiffResult
	for _, c := range new.Campaigns {
		prev, ok := oldById[c.Id]
		if !ok {
			result.Added = append(result.Added, c)
			continue
		}
		if prev.Timeframe != c.Timeframe || !slices.Equal(prev.Rewards, c.Rewards) {
			result.Changed = append(result.Changed, c)
		}
	}
	for _, c := range old.Campaigns {
		if _, ok := newById[c.Id]; !ok {
			result.Removed = append(result.Removed, c)
		}
	}

	if len(result.Changed) > 0 {
		slog.WarnContext(
			ctx, "campaigns changed in place under a stable id, likely an id collision",
			"count", len(result.Changed),
		)
	}
	return result
}
