package notify

import (
	"context"
	"fmt"
	"time"

	"dropwatch-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatId   string `json:"chat_id"`
}

func (c TelegramConfig) Configured() bool {
	return c.BotToken != "" && c.ChatId != ""
}

// Telegram sends digests through the bot sendMessage api.
type Telegram struct {
	config TelegramConfig
	client *resty.Client
}

func NewTelegram(config TelegramConfig) *Telegram {
	client := resty.New()
	client.SetTimeout(time.Second * 20)
	telemetry.InstrumentResty(client, "notify/telegram")

	return &Telegram{
		config: config,
		client: client,
	}
}

func (t *Telegram) Send(ctx context.Context, message string) error {
	res, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"chat_id":                  t.config.ChatId,
			"text":                     message,
			"disable_web_page_preview": true,
		}).
		Post(fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.config.BotToken))
	if err != nil {
		return err
	}
	if res.StatusCode() >= 400 {
		return fmt.Errorf("telegram send failed with status %d: %s", res.StatusCode(), res.String())
	}
	return nil
}
