package mailer

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/emberpost/newsletter/internal/config"
	"github.com/emberpost/newsletter/internal/pkg/logger"
)

// PostmarkSender delivers email through the Postmark transactional API.
type PostmarkSender struct {
	client    *postmark.Client
	fromEmail string
	fromName  string
}

// NewPostmarkSender validates tokens up front so a misconfigured service
// fails at startup instead of on the first send.
func NewPostmarkSender(cfg config.MailerConfig) (*PostmarkSender, error) {
	if cfg.Postmark.ServerToken == "" {
		return nil, fmt.Errorf("postmark: server token is required")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("postmark: from_email is required")
	}

	return &PostmarkSender{
		client:    postmark.NewClient(cfg.Postmark.ServerToken, cfg.Postmark.AccountToken),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

// Send delivers a single email through Postmark. Postmark reports some
// failures in the response body with a zero error, so both are checked.
func (p *PostmarkSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	from := p.fromEmail
	if p.fromName != "" {
		from = fmt.Sprintf("%s <%s>", p.fromName, p.fromEmail)
	}

	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:     from,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("postmark send: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark send: %d - %s", resp.ErrorCode, resp.Message)
	}

	logger.Info("email sent via postmark", "recipient", to, "message_id", resp.MessageID)

	return nil
}
