// Package mail delivers outbound email over SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
)

// SMTPMailer sends plain-text messages with gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

// New returns an SMTP mailer, or a LogMailer when no host is configured.
func New(cfg config.MailConfig, log zerolog.Logger) ports.Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{dialer: d, from: cfg.From, log: log}
}

func (m *SMTPMailer) Send(ctx context.Context, email ports.OutboundEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(buildMessage(m.from, email)); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	m.log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")
	return nil
}

func buildMessage(from string, email ports.OutboundEmail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)
	return msg
}

// LogMailer writes messages to the log instead of sending them. Development only.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, email ports.OutboundEmail) error {
	m.log.Info().Str("to", email.To).Str("subject", email.Subject).Str("body", email.Body).Msg("email (not sent, MAIL_HOST unset)")
	return nil
}

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)
