package commands

import (
	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/seenstate"
	"dropwatch-backend/services/signals"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(signalsCmd)
}

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Runs the keyword checks over auxiliary public pages and notifies about unseen drops signals.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		// public sources only, no twitch session needed
		service := signals.NewService(
			signals.NewClient(),
			signals.DefaultChecks(),
			seenstate.NewFileStore(cfg.Signals.SeenFile),
			buildNotifier(cfg),
		)

		err := service.Run(cmd.Context())
		if err != nil {
			osutil.Fatal("signal scan failed", err)
		}
	},
}
