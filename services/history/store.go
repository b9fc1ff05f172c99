// Package history keeps a per-run record of every scraped campaign in
// sqlite so the evolution of a game's campaigns stays queryable after
// the snapshot file has moved on.
package history

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"dropwatch-backend/lib/scrapers/twitchdrops"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// separator used to pack the ordered reward lines into one column
const rewardsSeparator = "\x1f"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

// Push records one run's deduplicated campaign set.
func (s Store) Push(ctx context.Context, at time.Time, campaigns []twitchdrops.Campaign) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (scraped_at, campaign_count) VALUES (?, ?)`,
		at.UTC().Unix(), len(campaigns),
	)
	if err != nil {
		return err
	}
	runId, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, c := range campaigns {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO run_campaigns (run_id, campaign_id, game_slug, game_name, timeframe, rewards)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runId, c.Id, c.GameSlug, c.GameName, c.Timeframe,
			strings.Join(c.Rewards, rewardsSeparator),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Entry is one observation of one campaign in one run.
type Entry struct {
	ScrapedAt  time.Time
	CampaignId string
	GameName   string
	Timeframe  string
	Rewards    []string
}

// PullSlug returns every observation of a game's campaigns, oldest
// first.
func (s Store) PullSlug(ctx context.Context, slug string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT runs.scraped_at, rc.campaign_id, rc.game_name, rc.timeframe, rc.rewards
		 FROM run_campaigns rc
		 JOIN runs ON runs.id = rc.run_id
		 WHERE rc.game_slug = ?
		 ORDER BY runs.scraped_at ASC, rc.campaign_id ASC`,
		slug,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var scrapedAt int64
		var entry Entry
		var rewards string
		err = rows.Scan(&scrapedAt, &entry.CampaignId, &entry.GameName, &entry.Timeframe, &rewards)
		if err != nil {
			return nil, err
		}
		entry.ScrapedAt = time.Unix(scrapedAt, 0).UTC()
		if rewards != "" {
			entry.Rewards = strings.Split(rewards, rewardsSeparator)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
