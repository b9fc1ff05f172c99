package dropwatch

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"dropwatch-backend/lib/notify"
	"dropwatch-backend/lib/scrapers/twitchdrops"
	"dropwatch-backend/lib/textutil"
)

// DefaultWatchSlug is watched when no watch list is configured at all.
const DefaultWatchSlug = "tom-clancys-rainbow-six-siege"

const maxNewEntries = 3
const maxUpdatedEntries = 2
const maxRewardsLength = 200

// ParseWatchSet parses the comma-separated boundary value into a
// lowercase slug set, ignoring empty entries. The default slug applies
// only when the value is unset entirely; a set-but-blank value means
// watch nothing.
func ParseWatchSet(raw string) map[string]bool {
	watch := map[string]bool{}
	for _, entry := range strings.Split(raw, ",") {
		slug := strings.ToLower(strings.TrimSpace(entry))
		if slug != "" {
			watch[slug] = true
		}
	}
	if raw == "" {
		watch[DefaultWatchSlug] = true
	}
	return watch
}

// FilterTargets narrows a diff down to the watched games. Removed
// campaigns are not surfaced: only new or updated information is
// actionable.
func FilterTargets(d DiffResult, watch map[string]bool) (added, changed []twitchdrops.Campaign) {
	for _, c := range d.Added {
		if watch[strings.ToLower(c.GameSlug)] {
			added = append(added, c)
		}
	}
	for _, c := range d.Changed {
		if watch[strings.ToLower(c.GameSlug)] {
			changed = append(changed, c)
		}
	}
	return added, changed
}

func digestEntry(c twitchdrops.Campaign) string {
	timeframe := c.Timeframe
	if timeframe == "" {
		timeframe = "Dates TBA"
	}
	return "• " + c.GameName + ": " + timeframe
}

// ComposeDigest renders one message summarizing the watched changes:
// a counted header, a few entries per bucket, and the reward list of
// the single highest-priority campaign.
func ComposeDigest(added, changed []twitchdrops.Campaign) string {
	lines := []string{"🎁 Twitch Drops update (targets)"}

	if len(added) > 0 {
		lines = append(lines, "New: "+strconv.Itoa(len(added)))
		for _, c := range added[:min(len(added), maxNewEntries)] {
			lines = append(lines, digestEntry(c))
		}
	}
	if len(changed) > 0 {
		lines = append(lines, "Updated: "+strconv.Itoa(len(changed)))
		for _, c := range changed[:min(len(changed), maxUpdatedEntries)] {
			lines = append(lines, digestEntry(c))
		}
	}

	pick := append(append([]twitchdrops.Campaign{}, added...), changed...)
	if len(pick) > 0 && len(pick[0].Rewards) > 0 {
		rewards := textutil.Truncate(strings.Join(pick[0].Rewards, "; "), maxRewardsLength)
		lines = append(lines, "Rewards: "+rewards)
	}

	return strings.Join(lines, "\n")
}

// Notify sends the digest for the watched subset of a diff, or logs and
// does nothing when there is nothing to tell. Delivery failure is
// logged and swallowed.
func Notify(ctx context.Context, d DiffResult, watch map[string]bool, notifier notify.Notifier) {
	added, changed := FilterTargets(d, watch)
	if len(added) == 0 && len(changed) == 0 {
		slog.InfoContext(ctx, "no new or updated campaigns for watched games")
		return
	}

	message := ComposeDigest(added, changed)
	err := notifier.Send(ctx, message)
	if err != nil {
		slog.WarnContext(ctx, "failed to deliver digest", "err", err)
		return
	}
	slog.InfoContext(ctx, "delivered digest", "new", len(added), "updated", len(changed))
}
