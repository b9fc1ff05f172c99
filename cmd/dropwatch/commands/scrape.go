package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/scrapers/twitchdrops"
	"dropwatch-backend/services/dropwatch"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scrapeJson *bool
var scrapeOut *string

func init() {
	scrapeJson = scrapeCmd.Flags().Bool("json", false, "Print the snapshot as json instead of a table.")
	scrapeOut = scrapeCmd.Flags().String("out", "", "Also write the snapshot to this file.")
	rootCmd.AddCommand(scrapeCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderSnapshot(snapshot twitchdrops.Snapshot) {
	t := newTable()
	t.AppendHeader(table.Row{"id", "game", "timeframe", "rewards"})
	for _, c := range snapshot.Campaigns {
		t.AppendRow(table.Row{c.Id, c.GameName, c.Timeframe, strings.Join(c.Rewards, "; ")})
	}
	t.Render()
	fmt.Printf("%d campaigns at %s\n", snapshot.Count, snapshot.ScrapedAt)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--json] [--out <path/to/snapshot.json>]",
	Short: "Scrapes the campaigns page once and prints what it sees, without touching the stored snapshot.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		client := createClient(cmd.Context(), cfg)

		service, cleanup := buildService(cfg, client, buildWatchSet(cmd.Context(), cfg, nil))
		defer cleanup()

		snapshot, err := service.Scrape(cmd.Context())
		if err != nil {
			osutil.Fatal("scrape failed", err)
		}

		if *scrapeOut != "" {
			err = dropwatch.NewFileStore(*scrapeOut).Save(cmd.Context(), snapshot)
			if err != nil {
				osutil.Fatal("failed to write snapshot", err)
			}
		}

		if *scrapeJson {
			contents, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				osutil.Fatal("failed to marshal snapshot", err)
			}
			fmt.Println(string(contents))
			return
		}
		renderSnapshot(snapshot)
	},
}
