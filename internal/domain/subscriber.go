package domain

import "time"

// SubscriberStatus enumerates the states a subscriber can be in.
type SubscriberStatus string

const (
	// SubscriberPending is the initial state: the opt-in email has been
	// issued but the confirmation link has not been clicked yet.
	SubscriberPending SubscriberStatus = "pending_confirmation"

	// SubscriberConfirmed means the subscriber clicked the confirmation
	// link. The only legal transition is pending_confirmation → confirmed;
	// a confirmed subscriber never reverts.
	SubscriberConfirmed SubscriberStatus = "confirmed"
)

// Subscriber represents a single newsletter recipient.
type Subscriber struct {
	ID           string           `json:"id" db:"id"`
	Email        EmailAddress     `json:"email" db:"email"`
	Name         DisplayName      `json:"name" db:"name"`
	Status       SubscriberStatus `json:"status" db:"status"`
	SubscribedAt time.Time        `json:"subscribed_at" db:"subscribed_at"`
}
