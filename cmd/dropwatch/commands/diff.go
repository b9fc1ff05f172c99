package commands

import (
	"fmt"

	"dropwatch-backend/lib/scrapers/twitchdrops"
	"dropwatch-backend/services/dropwatch"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

func appendDiffRows(t table.Writer, kind string, campaigns []twitchdrops.Campaign) {
	for _, c := range campaigns {
		t.AppendRow(table.Row{kind, c.Id, c.GameSlug, c.Timeframe})
	}
}

var diffCmd = &cobra.Command{
	Use:   "diff <old-snapshot.json> <new-snapshot.json>",
	Short: "Diffs two snapshot files by campaign id.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		old := dropwatch.NewFileStore(args[0]).Load(cmd.Context())
		new := dropwatch.NewFileStore(args[1]).Load(cmd.Context())

		result := dropwatch.Diff(cmd.Context(), old, new)
		if result.Empty() {
			fmt.Println("no changes")
			return
		}

		t := newTable()
		t.AppendHeader(table.Row{"", "id", "game", "timeframe"})
		appendDiffRows(t, "added", result.Added)
		appendDiffRows(t, "removed", result.Removed)
		appendDiffRows(t, "changed", result.Changed)
		t.Render()
	},
}
