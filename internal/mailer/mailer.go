package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/emberpost/newsletter/internal/config"
	"github.com/emberpost/newsletter/internal/service/subscription"
)

// New builds the sender named by cfg.Provider, wrapped with the configured
// send timeout. Unknown providers are an error so a typo in configuration
// fails at startup rather than at the first send.
func New(cfg config.MailerConfig) (subscription.Notifier, error) {
	var (
		sender subscription.Notifier
		err    error
	)
	switch cfg.Provider {
	case "ses":
		sender, err = NewSESSender(cfg)
	case "postmark":
		sender, err = NewPostmarkSender(cfg)
	case "dev":
		sender = NewDevSender(cfg)
	default:
		return nil, fmt.Errorf("unknown mailer provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return withTimeout(sender, cfg.Timeout()), nil
}

// timeoutSender bounds every send with a deadline so a slow ESP cannot
// hold a subscription request open indefinitely.
type timeoutSender struct {
	next    subscription.Notifier
	timeout time.Duration
}

func withTimeout(next subscription.Notifier, timeout time.Duration) subscription.Notifier {
	if timeout <= 0 {
		return next
	}
	return &timeoutSender{next: next, timeout: timeout}
}

func (t *timeoutSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Send(ctx, to, subject, htmlBody, textBody)
}
