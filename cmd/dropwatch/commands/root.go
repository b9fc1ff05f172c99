package commands

import (
	"context"
	"fmt"
	"os"

	"dropwatch-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var debug *bool

var rootCmd = &cobra.Command{
	Use:   "dropwatch",
	Short: "dropwatch watches the twitch drops campaigns page and reports changes for the games you care about.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*debug)
	},
}

func init() {
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
