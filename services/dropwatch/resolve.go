package dropwatch

import (
	"strings"

	"dropwatch-backend/lib/scrapers/twitchdrops"
	"dropwatch-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// ResolveWatchSlug maps a human-entered game name onto a slug present
// in the snapshot, so a watch list can say "rainbow six" instead of the
// exact category slug. Exact slug matches always win, then a normalized
// substring match, then the closest edit-distance candidate within a
// third of the query's length.
func ResolveWatchSlug(query string, campaigns []twitchdrops.Campaign) (string, bool) {
	normalized := textutil.NormalizeName(query)
	if normalized == "" {
		return "", false
	}

	for _, c := range campaigns {
		if strings.ToLower(c.GameSlug) == strings.ToLower(strings.TrimSpace(query)) {
			return c.GameSlug, true
		}
	}

	for _, c := range campaigns {
		if strings.Contains(textutil.NormalizeName(c.GameName), normalized) ||
			strings.Contains(textutil.NormalizeName(c.GameSlug), normalized) {
			return c.GameSlug, true
		}
	}

	bestSlug := ""
	bestDistance := len(normalized)/3 + 1
	for _, c := range campaigns {
		distance := matchr.DamerauLevenshtein(normalized, textutil.NormalizeName(c.GameName))
		if distance < bestDistance {
			bestDistance = distance
			bestSlug = c.GameSlug
		}
	}
	return bestSlug, bestSlug != ""
}
