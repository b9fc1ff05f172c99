package commands

import (
	"log/slog"

	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/sqliteutil"
	"dropwatch-backend/services/dropwatch"
	"dropwatch-backend/services/history"

	"github.com/spf13/cobra"
)

var runGames *[]string

func init() {
	runGames = runCmd.Flags().StringArray("game", nil, "Game name to watch, resolved against the stored snapshot (repeatable).")
	rootCmd.AddCommand(runCmd)
}

func buildService(cfg Config, client dropwatch.PageSource, watch map[string]bool) (dropwatch.Service, func()) {
	var recorder dropwatch.HistoryRecorder
	cleanup := func() {}

	if cfg.HistoryDb != "" {
		db, err := sqliteutil.OpenDB(history.Schema, cfg.HistoryDb)
		if err != nil {
			osutil.Fatal("failed to open history db", err)
		}
		recorder = history.NewStore(db)
		cleanup = func() { db.Close() }
	}

	service := dropwatch.NewService(
		client,
		dropwatch.NewFileStore(cfg.SnapshotFile),
		buildNotifier(cfg),
		recorder,
		dropwatch.Options{
			WatchSlugs: watch,
		},
	)
	return service, cleanup
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one watch pass: scrape, snapshot, diff and notify.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		client := createClient(cmd.Context(), cfg)
		watch := buildWatchSet(cmd.Context(), cfg, *runGames)

		service, cleanup := buildService(cfg, client, watch)
		defer cleanup()

		result, err := service.Run(cmd.Context())
		if err != nil {
			osutil.Fatal("watch pass failed", err)
		}
		slog.Info(
			"watch pass complete",
			"added", len(result.Added),
			"removed", len(result.Removed),
			"changed", len(result.Changed),
		)
	},
}
