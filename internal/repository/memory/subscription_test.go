package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/emberpost/newsletter/internal/domain"
	"github.com/emberpost/newsletter/internal/service/subscription"
)

func newSubscriber(t *testing.T, email string) *domain.Subscriber {
	t.Helper()
	addr, err := domain.ParseEmail(email)
	if err != nil {
		t.Fatalf("ParseEmail(%q): %v", email, err)
	}
	name, err := domain.ParseName("test reader")
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	return &domain.Subscriber{
		Email:        addr,
		Name:         name,
		Status:       domain.SubscriberPending,
		SubscribedAt: time.Now().UTC(),
	}
}

func TestCreateWithToken_AtomicOnTokenCollision(t *testing.T) {
	repo := NewSubscriptionRepo()
	ctx := context.Background()

	if err := repo.CreateWithToken(ctx, newSubscriber(t, "first@example.com"), "sharedtoken"); err != nil {
		t.Fatalf("first CreateWithToken: %v", err)
	}

	second := newSubscriber(t, "second@example.com")
	err := repo.CreateWithToken(ctx, second, "sharedtoken")
	if !errors.Is(err, subscription.ErrTokenCollision) {
		t.Fatalf("CreateWithToken error = %v, want ErrTokenCollision", err)
	}

	// Neither row of the failed registration may remain.
	if repo.Len() != 1 {
		t.Errorf("subscribers stored = %d, want 1", repo.Len())
	}
	if _, err := repo.SubscriberIDByToken(ctx, "sharedtoken"); err != nil {
		t.Errorf("original token lost: %v", err)
	}
	// The second email must be free to register again.
	if err := repo.CreateWithToken(ctx, newSubscriber(t, "second@example.com"), "freshtoken"); err != nil {
		t.Errorf("retry after collision: %v", err)
	}
}

func TestCreateWithToken_DuplicateEmail(t *testing.T) {
	repo := NewSubscriptionRepo()
	ctx := context.Background()

	if err := repo.CreateWithToken(ctx, newSubscriber(t, "dup@example.com"), "token-one"); err != nil {
		t.Fatalf("CreateWithToken: %v", err)
	}
	err := repo.CreateWithToken(ctx, newSubscriber(t, "dup@example.com"), "token-two")
	if !errors.Is(err, subscription.ErrDuplicateEmail) {
		t.Errorf("CreateWithToken error = %v, want ErrDuplicateEmail", err)
	}
	if _, err := repo.SubscriberIDByToken(ctx, "token-two"); !errors.Is(err, subscription.ErrTokenNotFound) {
		t.Errorf("token of failed registration resolvable, err = %v", err)
	}
}

func TestConfirm_Idempotent(t *testing.T) {
	repo := NewSubscriptionRepo()
	ctx := context.Background()

	sub := newSubscriber(t, "reader@example.com")
	if err := repo.CreateWithToken(ctx, sub, "token"); err != nil {
		t.Fatalf("CreateWithToken: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.Confirm(ctx, sub.ID); err != nil {
			t.Fatalf("Confirm #%d: %v", i+1, err)
		}
		stored, ok := repo.Get(sub.ID)
		if !ok {
			t.Fatal("subscriber missing after Confirm")
		}
		if stored.Status != domain.SubscriberConfirmed {
			t.Errorf("status = %q, want %q", stored.Status, domain.SubscriberConfirmed)
		}
	}
}

func TestConfirm_UnknownSubscriber(t *testing.T) {
	repo := NewSubscriptionRepo()
	err := repo.Confirm(context.Background(), "nope")
	if !errors.Is(err, subscription.ErrSubscriberNotFound) {
		t.Errorf("Confirm error = %v, want ErrSubscriberNotFound", err)
	}
}

func TestCreateWithToken_ConcurrentDistinctEmails(t *testing.T) {
	repo := NewSubscriptionRepo()
	const goroutines = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr, err := domain.ParseEmail(fmt.Sprintf("reader-%d@example.com", i))
			if err != nil {
				t.Errorf("ParseEmail: %v", err)
				return
			}
			name, err := domain.ParseName("concurrent reader")
			if err != nil {
				t.Errorf("ParseName: %v", err)
				return
			}
			sub := &domain.Subscriber{Email: addr, Name: name, Status: domain.SubscriberPending, SubscribedAt: time.Now().UTC()}
			if err := repo.CreateWithToken(context.Background(), sub, fmt.Sprintf("token-%d", i)); err != nil {
				t.Errorf("CreateWithToken: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if repo.Len() != goroutines {
		t.Errorf("subscribers stored = %d, want %d", repo.Len(), goroutines)
	}
}
