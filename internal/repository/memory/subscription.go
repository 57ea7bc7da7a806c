// Package memory implements the service repository interfaces with
// mutex-guarded maps. Used by handler tests and local development; the
// semantics mirror the Postgres implementation, including create-with-token
// atomicity and idempotent confirmation.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/emberpost/newsletter/internal/domain"
	"github.com/emberpost/newsletter/internal/service/subscription"
)

// SubscriptionRepo implements subscription.Repository in memory.
type SubscriptionRepo struct {
	mu      sync.RWMutex
	subs    map[string]domain.Subscriber // keyed by id
	byEmail map[string]string            // email -> id
	byToken map[string]string            // token -> id
}

// NewSubscriptionRepo creates an empty in-memory subscription repository.
func NewSubscriptionRepo() *SubscriptionRepo {
	return &SubscriptionRepo{
		subs:    make(map[string]domain.Subscriber),
		byEmail: make(map[string]string),
		byToken: make(map[string]string),
	}
}

func (r *SubscriptionRepo) Create(_ context.Context, sub *domain.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(sub)
}

func (r *SubscriptionRepo) StoreToken(_ context.Context, subscriberID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.storeTokenLocked(subscriberID, token)
}

// CreateWithToken inserts both records under one lock acquisition, undoing
// the subscriber insert if the token collides, so callers never observe one
// without the other.
func (r *SubscriptionRepo) CreateWithToken(_ context.Context, sub *domain.Subscriber, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.createLocked(sub); err != nil {
		return err
	}
	if err := r.storeTokenLocked(sub.ID, token); err != nil {
		delete(r.byEmail, sub.Email.String())
		delete(r.subs, sub.ID)
		return err
	}
	return nil
}

func (r *SubscriptionRepo) SubscriberIDByToken(_ context.Context, token string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byToken[token]
	if !ok {
		return "", subscription.ErrTokenNotFound
	}
	return id, nil
}

func (r *SubscriptionRepo) Confirm(_ context.Context, subscriberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[subscriberID]
	if !ok {
		return subscription.ErrSubscriberNotFound
	}
	sub.Status = domain.SubscriberConfirmed
	r.subs[subscriberID] = sub
	return nil
}

// Get returns a stored subscriber by id. Test helper; not part of the
// subscription.Repository contract.
func (r *SubscriptionRepo) Get(subscriberID string) (domain.Subscriber, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[subscriberID]
	return sub, ok
}

// TokenFor returns the confirmation token issued for a subscriber id, if
// any. Test helper.
func (r *SubscriptionRepo) TokenFor(subscriberID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for tok, id := range r.byToken {
		if id == subscriberID {
			return tok, true
		}
	}
	return "", false
}

// All returns a copy of every stored subscriber. Test helper.
func (r *SubscriptionRepo) All() []domain.Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]domain.Subscriber, 0, len(r.subs))
	for _, sub := range r.subs {
		subs = append(subs, sub)
	}
	return subs
}

// Len reports how many subscribers are stored. Test helper.
func (r *SubscriptionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

func (r *SubscriptionRepo) createLocked(sub *domain.Subscriber) error {
	if _, dup := r.byEmail[sub.Email.String()]; dup {
		return subscription.ErrDuplicateEmail
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	r.subs[sub.ID] = *sub
	r.byEmail[sub.Email.String()] = sub.ID
	return nil
}

func (r *SubscriptionRepo) storeTokenLocked(subscriberID, token string) error {
	if _, dup := r.byToken[token]; dup {
		return subscription.ErrTokenCollision
	}
	r.byToken[token] = subscriberID
	return nil
}
