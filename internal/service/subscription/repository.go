package subscription

import (
	"context"

	"github.com/emberpost/newsletter/internal/domain"
)

// Repository defines the data access contract for subscribers and their
// confirmation tokens. It is the sole authority over persisted subscriber
// state; all operations must be atomic with respect to concurrent callers.
type Repository interface {
	// Create inserts a new subscriber row in pending_confirmation status.
	// The repository assigns sub.ID if it is empty. Returns
	// ErrDuplicateEmail if the address is already registered.
	Create(ctx context.Context, sub *domain.Subscriber) error

	// StoreToken inserts a confirmation token row for an existing
	// subscriber. Returns ErrTokenCollision if the token string is taken.
	StoreToken(ctx context.Context, subscriberID, token string) error

	// CreateWithToken performs Create and StoreToken inside a single
	// transaction: afterwards either both rows exist or neither does.
	// A subscriber without a token (or a token without its subscriber)
	// must never be observable.
	CreateWithToken(ctx context.Context, sub *domain.Subscriber, token string) error

	// SubscriberIDByToken resolves a confirmation token to its subscriber
	// id without changing state. Returns ErrTokenNotFound for unknown
	// tokens.
	SubscriberIDByToken(ctx context.Context, token string) (string, error)

	// Confirm sets the subscriber's status to confirmed. Idempotent:
	// confirming an already-confirmed subscriber succeeds silently.
	// Returns ErrSubscriberNotFound for unknown ids.
	Confirm(ctx context.Context, subscriberID string) error
}

// Notifier delivers the confirmation message to a subscriber. Failures are
// visible to the workflow but never retried by it; retry policy belongs to
// the implementation behind this interface.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}
