package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/emberpost/newsletter/internal/domain"
	"github.com/emberpost/newsletter/internal/service/subscription"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return db, mock, func() { db.Close() }
}

func pendingSubscriber(t *testing.T) *domain.Subscriber {
	t.Helper()
	email, err := domain.ParseEmail("arun@arun.com")
	if err != nil {
		t.Fatalf("ParseEmail: %v", err)
	}
	name, err := domain.ParseName("arun manivannan")
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	return &domain.Subscriber{
		Email:        email,
		Name:         name,
		Status:       domain.SubscriberPending,
		SubscribedAt: time.Now().UTC(),
	}
}

func TestCreateWithToken_CommitsBothRows(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSubscriptionRepo(db)
	sub := pendingSubscriber(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs(sqlmock.AnyArg(), "arun@arun.com", "arun manivannan", sub.SubscribedAt, string(domain.SubscriberPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO subscription_tokens").
		WithArgs("sometokenvalue1234567890ab", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CreateWithToken(context.Background(), sub, "sometokenvalue1234567890ab"); err != nil {
		t.Fatalf("CreateWithToken: %v", err)
	}
	if sub.ID == "" {
		t.Error("CreateWithToken did not assign a subscriber id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateWithToken_RollsBackWhenTokenInsertFails(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSubscriptionRepo(db)
	sub := pendingSubscriber(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO subscriptions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO subscription_tokens").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subscription_tokens_pkey"})
	mock.ExpectRollback()

	err := repo.CreateWithToken(context.Background(), sub, "collidingtoken")
	if !errors.Is(err, subscription.ErrTokenCollision) {
		t.Errorf("CreateWithToken error = %v, want ErrTokenCollision", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations (rollback missing?): %v", err)
	}
}

func TestCreateWithToken_DuplicateEmailRollsBack(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSubscriptionRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO subscriptions").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subscriptions_email_key"})
	mock.ExpectRollback()

	err := repo.CreateWithToken(context.Background(), pendingSubscriber(t), "freshtoken")
	if !errors.Is(err, subscription.ErrDuplicateEmail) {
		t.Errorf("CreateWithToken error = %v, want ErrDuplicateEmail", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubscriberIDByToken_Found(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSubscriptionRepo(db)

	mock.ExpectQuery("SELECT subscriber_id FROM subscription_tokens").
		WithArgs("knowntoken").
		WillReturnRows(sqlmock.NewRows([]string{"subscriber_id"}).AddRow("11111111-2222-3333-4444-555555555555"))

	id, err := repo.SubscriberIDByToken(context.Background(), "knowntoken")
	if err != nil {
		t.Fatalf("SubscriberIDByToken: %v", err)
	}
	if id != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("id = %q", id)
	}
}

func TestSubscriberIDByToken_Unknown(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSubscriptionRepo(db)

	mock.ExpectQuery("SELECT subscriber_id FROM subscription_tokens").
		WithArgs("does-not-exist").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SubscriberIDByToken(context.Background(), "does-not-exist")
	if !errors.Is(err, subscription.ErrTokenNotFound) {
		t.Errorf("SubscriberIDByToken error = %v, want ErrTokenNotFound", err)
	}
}

func TestConfirm_UpdatesRow(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSubscriptionRepo(db)

	mock.ExpectExec("UPDATE subscriptions SET status").
		WithArgs(string(domain.SubscriberConfirmed), "sub-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Confirm(context.Background(), "sub-id"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
}

func TestConfirm_UnknownSubscriber(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSubscriptionRepo(db)

	mock.ExpectExec("UPDATE subscriptions SET status").
		WithArgs(string(domain.SubscriberConfirmed), "missing-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Confirm(context.Background(), "missing-id")
	if !errors.Is(err, subscription.ErrSubscriberNotFound) {
		t.Errorf("Confirm error = %v, want ErrSubscriberNotFound", err)
	}
}
