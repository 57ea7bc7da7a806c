package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emberpost/newsletter/internal/domain"
	"github.com/emberpost/newsletter/internal/pkg/logger"
	"github.com/emberpost/newsletter/internal/pkg/token"
)

// Service implements the double opt-in workflow. It is safe for concurrent
// use: all shared state lives behind the repository.
type Service struct {
	repo     Repository
	notifier Notifier
	baseURL  string
}

// NewService creates a subscription service. baseURL is the public address
// confirmation links point back to, e.g. "https://newsletter.example.com".
func NewService(repo Repository, notifier Notifier, baseURL string) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Subscribe registers a new pending subscriber and sends the confirmation
// email. On success it returns the new subscriber id.
//
// Failure modes, in order:
//   - invalid name or email: *domain.ValidationError, nothing written
//   - persistence failure: wrapped repository error, nothing written
//     (subscriber and token are committed together or not at all)
//   - notification failure: wrapped ErrNotificationFailed; the pending row
//     stays committed and the subscriber can be reached by a later resend
func (s *Service) Subscribe(ctx context.Context, rawName, rawEmail string) (string, error) {
	name, err := domain.ParseName(rawName)
	if err != nil {
		return "", err
	}
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return "", err
	}

	tok, err := token.New()
	if err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}

	sub := &domain.Subscriber{
		Email:        email,
		Name:         name,
		Status:       domain.SubscriberPending,
		SubscribedAt: time.Now().UTC(),
	}

	logger.Info("saving new subscriber", "email", email.String())
	if err := s.repo.CreateWithToken(ctx, sub, tok); err != nil {
		return "", fmt.Errorf("create pending subscriber: %w", err)
	}

	link := s.confirmationLink(tok)
	subject, htmlBody, textBody := buildConfirmationEmail(name.String(), link)
	if err := s.notifier.Send(ctx, email.String(), subject, htmlBody, textBody); err != nil {
		// The row is already committed. Surface the failure instead of
		// pretending the registration succeeded.
		logger.Error("confirmation email failed, subscriber left pending",
			"email", email.String(), "subscriber_id", sub.ID, "error", err)
		return "", fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	logger.Info("new subscriber pending confirmation",
		"email", email.String(), "subscriber_id", sub.ID)
	return sub.ID, nil
}

// Confirm redeems a confirmation token and activates its subscription.
// Unknown tokens (including empty ones) return ErrTokenNotFound. Redeeming
// an already-redeemed token succeeds: the status update is idempotent.
func (s *Service) Confirm(ctx context.Context, rawToken string) error {
	tok := strings.TrimSpace(rawToken)
	if tok == "" {
		return ErrTokenNotFound
	}

	subscriberID, err := s.repo.SubscriberIDByToken(ctx, tok)
	if err != nil {
		return fmt.Errorf("resolve subscription token: %w", err)
	}

	if err := s.repo.Confirm(ctx, subscriberID); err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}

	logger.Info("subscriber confirmed", "subscriber_id", subscriberID)
	return nil
}

// confirmationLink builds the opt-in URL embedded in the outgoing email.
func (s *Service) confirmationLink(tok string) string {
	return fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", s.baseURL, tok)
}
