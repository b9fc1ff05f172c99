package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"dropwatch-backend/lib/configutil"
	"dropwatch-backend/lib/notify"
	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/scrapers/twitchdrops"
	"dropwatch-backend/services/dropwatch"
)

type BadgeConfig struct {
	CategorySlug string `json:"category_slug"`
	SeenFile     string `json:"seen_file"`
}

type SignalsConfig struct {
	SeenFile string `json:"seen_file"`
}

type Config struct {
	// comma-separated game slugs to notify about
	TargetSlugs  string                `json:"target_slugs"`
	SnapshotFile string                `json:"snapshot_file"`
	HistoryDb    string                `json:"history_db"`
	StateFile    string                `json:"state_file"`
	BaseUrl      string                `json:"base_url"`
	Cron         string                `json:"cron"`
	Badge        BadgeConfig           `json:"badge"`
	Signals      SignalsConfig         `json:"signals"`
	Telegram     notify.TelegramConfig `json:"telegram"`
	Smtp         notify.SmtpConfig     `json:"smtp"`
}

// loadConfig reads config.json5 (with .local overrides) and applies the
// env var overrides for the boundary values and secrets. A missing
// config file is fine, env vars can fully configure a run.
func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		osutil.Fatal("failed to read config", err)
	}

	if v := os.Getenv("TARGET_SLUGS"); v != "" {
		cfg.TargetSlugs = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatId = v
	}

	if cfg.SnapshotFile == "" {
		cfg.SnapshotFile = "data/campaigns.json"
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "twitch_storage_state.json"
	}
	if cfg.Cron == "" {
		cfg.Cron = "*/30 * * * *"
	}
	if cfg.Badge.CategorySlug == "" {
		cfg.Badge.CategorySlug = dropwatch.DefaultWatchSlug
	}
	if cfg.Badge.SeenFile == "" {
		cfg.Badge.SeenFile = "data/badge_seen.json"
	}
	if cfg.Signals.SeenFile == "" {
		cfg.Signals.SeenFile = "data/signals_seen.json"
	}
	return cfg
}

// buildWatchSet turns the configured slug list plus any --game names
// into the watch set. Names are resolved against the stored snapshot,
// so "rainbow six" finds the scraped category slug; a name that matches
// nothing is kept as a literal slug so a later scrape can still hit it.
func buildWatchSet(ctx context.Context, cfg Config, games []string) map[string]bool {
	if len(games) == 0 {
		return dropwatch.ParseWatchSet(cfg.TargetSlugs)
	}

	watch := map[string]bool{}
	if cfg.TargetSlugs != "" {
		watch = dropwatch.ParseWatchSet(cfg.TargetSlugs)
	}

	catalog := dropwatch.NewFileStore(cfg.SnapshotFile).Load(ctx).Campaigns
	for _, game := range games {
		slug, ok := dropwatch.ResolveWatchSlug(game, catalog)
		if !ok {
			slug = strings.ToLower(strings.TrimSpace(game))
			slog.Warn("game name matches no scraped campaign, watching it as a slug", "game", game)
		}
		if slug == "" {
			continue
		}
		watch[slug] = true
	}
	return watch
}

func buildNotifier(cfg Config) notify.Notifier {
	var notifiers notify.Multi
	if cfg.Telegram.Configured() {
		notifiers = append(notifiers, notify.NewTelegram(cfg.Telegram))
	}
	if cfg.Smtp.Configured() {
		notifiers = append(notifiers, notify.NewEmail(cfg.Smtp))
	}
	if len(notifiers) == 0 {
		return notify.Console{}
	}
	return notifiers
}

// createClient restores the recorded twitch session and builds the page
// client. A missing session is the one fatal startup condition; it
// aborts here, before any page activity.
func createClient(ctx context.Context, cfg Config) *twitchdrops.Client {
	state, err := twitchdrops.LoadSessionState(cfg.StateFile, os.Getenv("TWITCH_STATE_B64"))
	if err != nil {
		osutil.Fatal("failed to restore twitch session state", err)
	}

	client, err := twitchdrops.NewClient(ctx, twitchdrops.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		State:   state,
	})
	if err != nil {
		osutil.Fatal("failed to initialize twitch client", err)
	}
	return client
}
