package mailer

import (
	"context"

	"github.com/emberpost/newsletter/internal/config"
	"github.com/emberpost/newsletter/internal/pkg/logger"
)

// DevSender logs messages instead of delivering them. Used in local
// development where no ESP credentials exist; the confirmation link is
// logged so the flow can be exercised by hand.
type DevSender struct {
	fromEmail string
}

func NewDevSender(cfg config.MailerConfig) *DevSender {
	return &DevSender{fromEmail: cfg.FromEmail}
}

func (d *DevSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	logger.Info("dev mailer: email not sent",
		"from", d.fromEmail,
		"recipient", to,
		"subject", subject,
		"text_body", textBody,
	)
	return nil
}
