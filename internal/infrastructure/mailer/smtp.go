package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/boring-ventures/minka-sub001/internal/config"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
)

// SMTPMailer sends e-mail through an SMTP relay
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *zap.Logger
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "Minka"
	}
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: fromName,
		logger:   logger,
	}
}

// Send delivers email with an HTML body and a plain text alternative
func (m *SMTPMailer) Send(ctx context.Context, email *provider.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(m.newMessage(email)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug("Email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

func (m *SMTPMailer) newMessage(email *provider.Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, m.fromName))
	if email.ToName != "" {
		msg.SetHeader("To", msg.FormatAddress(email.To, email.ToName))
	} else {
		msg.SetHeader("To", email.To)
	}
	msg.SetHeader("Subject", email.Subject)

	if email.Text != "" {
		msg.SetBody("text/plain", email.Text)
		if email.HTML != "" {
			msg.AddAlternative("text/html", email.HTML)
		}
	} else {
		msg.SetBody("text/html", email.HTML)
	}
	return msg
}
