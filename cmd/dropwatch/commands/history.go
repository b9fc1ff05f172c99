package commands

import (
	"errors"
	"strings"

	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/sqliteutil"
	"dropwatch-backend/services/history"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <game-slug>",
	Short: "Lists every recorded observation of a game's campaigns.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.HistoryDb == "" {
			osutil.Fatal("history is not configured", errors.New("set history_db in config.json5"))
		}

		db, err := sqliteutil.OpenDB(history.Schema, cfg.HistoryDb)
		if err != nil {
			osutil.Fatal("failed to open history db", err)
		}
		defer db.Close()

		entries, err := history.NewStore(db).PullSlug(cmd.Context(), args[0])
		if err != nil {
			osutil.Fatal("failed to pull history", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"scraped at", "id", "timeframe", "rewards"})
		for _, e := range entries {
			t.AppendRow(table.Row{
				e.ScrapedAt.Format("2006-01-02 15:04"),
				e.CampaignId,
				e.Timeframe,
				strings.Join(e.Rewards, "; "),
			})
		}
		t.Render()
	},
}
