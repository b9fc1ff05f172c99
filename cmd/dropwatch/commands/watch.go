package commands

import (
	"log/slog"

	"dropwatch-backend/internal/components/chrono"
	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var watchCron *string
var watchGames *[]string

func init() {
	watchCron = watchCmd.Flags().String("cron", "", "Cron schedule for watch passes (defaults to the configured one).")
	watchGames = watchCmd.Flags().StringArray("game", nil, "Game name to watch, resolved against the stored snapshot (repeatable).")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--cron <spec>]",
	Short: "Runs watch passes on a cron schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if *watchCron != "" {
			cfg.Cron = *watchCron
		}

		ctx := osutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx)

		client := createClient(ctx, cfg)
		watch := buildWatchSet(ctx, cfg, *watchGames)
		service, cleanup := buildService(cfg, client, watch)
		defer cleanup()

		pass := func() {
			_, err := service.Run(ctx)
			if err != nil {
				slog.Warn("watch pass failed, prior snapshot untouched", "err", err)
			}
		}

		cronner := chrono.NewStandardCron()
		err := cronner.Cron(cfg.Cron, pass)
		if err != nil {
			osutil.Fatal("failed to schedule watch pass", err)
		}
		slog.Info("watching campaigns", "cron", cfg.Cron)

		// one pass right away, then on schedule
		pass()
		<-ctx.Done()
	},
}
