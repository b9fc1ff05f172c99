package twitchdrops

import "time"

// Campaign is one promotional drops campaign tied to one game category.
// All fields are derived heuristically from rendered row text except
// GameSlug, which comes from the row's category link, and Id, which is
// a content hash (see Fingerprint). Records are never mutated after
// their id is assigned.
type Campaign struct {
	Id            string   `json:"id"`
	GameName      string   `json:"game_name"`
	GameSlug      string   `json:"game_slug"`
	CampaignTitle string   `json:"campaign_title"`
	Timeframe     string   `json:"timeframe"`
	StartRaw      *string  `json:"start_raw"`
	EndRaw        *string  `json:"end_raw"`
	Rewards       []string `json:"rewards"`
	RawText       string   `json:"raw_text"`
}

// Snapshot is the full set of campaigns observed in one scrape run.
// Campaign ids are unique within a snapshot.
type Snapshot struct {
	ScrapedAt string     `json:"scraped_at"`
	Count     int        `json:"count"`
	Campaigns []Campaign `json:"campaigns"`
}

// ScrapedAtFormat is the layout of Snapshot.ScrapedAt (ISO-8601 UTC).
const ScrapedAtFormat = "2006-01-02T15:04:05Z"

// NewSnapshot stamps a deduplicated campaign set with its scrape time.
func NewSnapshot(at time.Time, campaigns []Campaign) Snapshot {
	if campaigns == nil {
		campaigns = []Campaign{}
	}
	return Snapshot{
		ScrapedAt: at.UTC().Format(ScrapedAtFormat),
		Count:     len(campaigns),
		Campaigns: campaigns,
	}
}
