package twitchdrops

import (
	"regexp"
	"strings"

	"dropwatch-backend/lib/textutil"
)

// rows shorter than this can't describe a real campaign
const minRowTextLength = 20

var categoryLinkRegex = regexp.MustCompile(`(?i)https://www\.twitch\.tv/directory/(?:category/)?([^/?#]+)`)
var timeTokenRegex = regexp.MustCompile(`(?i)(Mon|Tue|Wed|Thu|Fri|Sat|Sun|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|GMT|UTC|CET|CEST)`)
var watchHoursRegex = regexp.MustCompile(`(?i)\bwatch\b.*?\b(\d+(\.\d+)?)\s*(hours?|hrs?|h)\b`)
var dropWordRegex = regexp.MustCompile(`(?i)\bdrop(s)?\b`)

// lineRule picks the first line satisfying its predicate, optionally
// looking only at the first `window` lines. every heuristic field below
// is one of these so the tie-break order stays auditable: first match
// wins, always.
type lineRule struct {
	window int
	match  func(line string) bool
}

func (r lineRule) pick(lines []string) (string, bool) {
	limit := len(lines)
	if r.window > 0 && r.window < limit {
		limit = r.window
	}
	for _, ln := range lines[:limit] {
		if r.match(ln) {
			return ln, true
		}
	}
	return "", false
}

var gameNameRule = lineRule{
	window: 4,
	match: func(ln string) bool {
		return len(ln) <= 50 && !strings.Contains(strings.ToLower(ln), "campaign")
	},
}

var timeframeRule = lineRule{
	match: func(ln string) bool {
		return timeTokenRegex.MatchString(ln)
	},
}

var titleRule = lineRule{
	window: 6,
	match: func(ln string) bool {
		low := strings.ToLower(ln)
		if len(ln) > 120 {
			return false
		}
		return strings.Contains(low, "drop") ||
			strings.Contains(low, "campaign") ||
			strings.Contains(low, "watch")
	},
}

func isRewardLine(ln string) bool {
	if watchHoursRegex.MatchString(ln) {
		return true
	}
	return dropWordRegex.MatchString(ln) && len(ln) <= 160
}

// GameSlugFromLinks scans a row's outbound links for a category
// directory url and returns the lowercased slug of the first one found.
// This is the only structured signal a row carries; without it the row
// is worthless.
func GameSlugFromLinks(links []string) (string, bool) {
	for _, href := range links {
		groups := categoryLinkRegex.FindStringSubmatch(href)
		if len(groups) < 2 {
			continue
		}
		return strings.ToLower(groups[1]), true
	}
	return "", false
}

// ParseRow turns one rendered row (its visible text plus its outbound
// links) into a Campaign. The second return value is false for rows
// that don't carry enough signal; discarding those is a filtering
// outcome, not an error.
func ParseRow(text string, links []string) (Campaign, bool) {
	if len(text) < minRowTextLength {
		return Campaign{}, false
	}
	slug, ok := GameSlugFromLinks(links)
	if !ok {
		return Campaign{}, false
	}

	lines := textutil.Lines(text)

	gameName, ok := gameNameRule.pick(lines)
	if !ok {
		gameName = textutil.TitleFromSlug(slug)
	}
	timeframe, _ := timeframeRule.pick(lines)

	var rewards []string
	for _, ln := range lines {
		if isRewardLine(ln) {
			rewards = append(rewards, ln)
		}
	}

	title, ok := titleRule.pick(lines)
	if !ok && len(lines) > 0 {
		title = lines[0]
	}

	var startRaw, endRaw *string
	if before, after, found := strings.Cut(timeframe, " - "); found {
		s := strings.TrimSpace(before)
		e := strings.TrimSpace(after)
		startRaw, endRaw = &s, &e
	}

	return Campaign{
		Id:            Fingerprint(slug, timeframe, rewards),
		GameName:      gameName,
		GameSlug:      slug,
		CampaignTitle: title,
		Timeframe:     timeframe,
		StartRaw:      startRaw,
		EndRaw:        endRaw,
		Rewards:       rewards,
		RawText:       text,
	}, true
}
