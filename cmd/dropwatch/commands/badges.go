package commands

import (
	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/seenstate"
	"dropwatch-backend/services/badgewatch"

	"github.com/spf13/cobra"
)

var badgeCategory *string

func init() {
	badgeCategory = badgesCmd.Flags().String("category", "", "Category slug to scan (defaults to the configured one).")
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges [--category <slug>]",
	Short: "Scans a category directory page for live streams with a drops badge and notifies about unseen ones.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if *badgeCategory != "" {
			cfg.Badge.CategorySlug = *badgeCategory
		}
		client := createClient(cmd.Context(), cfg)

		service := badgewatch.NewService(
			client,
			seenstate.NewFileStore(cfg.Badge.SeenFile),
			buildNotifier(cfg),
			badgewatch.Options{
				CategorySlug: cfg.Badge.CategorySlug,
				BaseUrl:      cfg.BaseUrl,
			},
		)

		err := service.Run(cmd.Context())
		if err != nil {
			osutil.Fatal("badge scan failed", err)
		}
	},
}
