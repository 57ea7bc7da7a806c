// Package postgres implements the service repository interfaces against
// PostgreSQL using database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/emberpost/newsletter/internal/domain"
	"github.com/emberpost/newsletter/internal/service/subscription"
)

// SubscriptionRepo implements subscription.Repository against PostgreSQL.
type SubscriptionRepo struct{ db *sql.DB }

// NewSubscriptionRepo creates a Postgres-backed subscription repository.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

// execer is satisfied by both *sql.DB and *sql.Tx so the single-row inserts
// can run standalone or inside CreateWithToken's transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SubscriptionRepo) Create(ctx context.Context, sub *domain.Subscriber) error {
	return insertSubscriber(ctx, r.db, sub)
}

func (r *SubscriptionRepo) StoreToken(ctx context.Context, subscriberID, token string) error {
	return insertToken(ctx, r.db, subscriberID, token)
}

// CreateWithToken inserts the subscriber row and its confirmation token row
// in one transaction. Either both commit or neither does; no reader can ever
// observe a subscriber without a token or a token without its subscriber.
func (r *SubscriptionRepo) CreateWithToken(ctx context.Context, sub *domain.Subscriber, token string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin subscription transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSubscriber(ctx, tx, sub); err != nil {
		return err
	}
	if err := insertToken(ctx, tx, sub.ID, token); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit subscription transaction: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) SubscriberIDByToken(ctx context.Context, token string) (string, error) {
	var subscriberID string
	err := r.db.QueryRowContext(ctx,
		`SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1`,
		token,
	).Scan(&subscriberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", subscription.ErrTokenNotFound
		}
		return "", fmt.Errorf("lookup subscription token: %w", err)
	}
	return subscriberID, nil
}

// Confirm flips the subscriber to confirmed. Idempotent: re-confirming an
// already-confirmed row still matches and succeeds.
func (r *SubscriptionRepo) Confirm(ctx context.Context, subscriberID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1 WHERE id = $2`,
		domain.SubscriberConfirmed, subscriberID,
	)
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("confirm subscriber rows: %w", err)
	}
	if n == 0 {
		return subscription.ErrSubscriberNotFound
	}
	return nil
}

func insertSubscriber(ctx context.Context, q execer, sub *domain.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID, sub.Email.String(), sub.Name.String(), sub.SubscribedAt, sub.Status)
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", classifyUniqueViolation(err))
	}
	return nil
}

func insertToken(ctx context.Context, q execer, subscriberID, token string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)
	`, token, subscriberID)
	if err != nil {
		return fmt.Errorf("insert subscription token: %w", classifyUniqueViolation(err))
	}
	return nil
}

// classifyUniqueViolation maps Postgres unique-violation errors (SQLSTATE
// 23505) onto the service sentinels, keyed by the violated constraint.
func classifyUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}
	switch pqErr.Constraint {
	case "subscriptions_email_key":
		return subscription.ErrDuplicateEmail
	case "subscription_tokens_pkey":
		return subscription.ErrTokenCollision
	}
	return err
}
