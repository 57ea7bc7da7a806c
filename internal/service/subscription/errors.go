package subscription

import "errors"

// Sentinel errors for the subscription service layer. Repositories return
// these (optionally wrapped) so handlers can translate them into HTTP
// statuses with errors.Is.
var (
	// ErrTokenNotFound means a presented confirmation token is unknown.
	// Handlers surface it as an authorization failure, not a validation
	// error, so callers cannot probe which tokens are registered.
	ErrTokenNotFound = errors.New("subscription token not found")

	// ErrTokenCollision means a generated token already exists in the
	// store. The write is rolled back; a caller that retries must generate
	// a fresh token first.
	ErrTokenCollision = errors.New("subscription token already exists")

	// ErrDuplicateEmail means the email address is already registered.
	ErrDuplicateEmail = errors.New("email address already subscribed")

	// ErrSubscriberNotFound means a subscriber id resolved from a token no
	// longer exists.
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrNotificationFailed means the subscriber row was committed but the
	// confirmation email could not be delivered. The record stays in
	// pending_confirmation; this is an accepted inconsistency, surfaced as
	// a server error rather than rolled back.
	ErrNotificationFailed = errors.New("confirmation email delivery failed")
)
