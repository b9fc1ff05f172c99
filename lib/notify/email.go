package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

func (c SmtpConfig) Configured() bool {
	return c.Server != "" && c.EmailAddress != "" && len(c.To) > 0
}

// Email delivers digests over smtp.
type Email struct {
	config SmtpConfig
}

func NewEmail(config SmtpConfig) *Email {
	return &Email{config: config}
}

func (e *Email) Send(ctx context.Context, message string) error {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Dropwatch <%s>", e.config.EmailAddress)
	mail.To = e.config.To
	mail.Subject = "Twitch Drops update"
	mail.Text = []byte(message)

	addr := fmt.Sprintf("%s:%d", e.config.Server, e.config.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", e.config.EmailAddress, e.config.Password, e.config.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		return mail.Send(addr, nil)
	}
	return err
}
