package subscription

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func subscriptionRows(id, memberID int, status string, endDate *time.Time) *sqlmock.Rows {
	now := time.Now()
	start := now.AddDate(0, 0, -5)
	return sqlmock.NewRows([]string{
		"id", "member_id", "plan_id", "plan_price", "start_date", "end_date", "status",
		"payment_status", "payment_method", "amount_paid", "notes", "created_at", "updated_at",
	}).AddRow(id, memberID, 2, 500.0, start, endDate, status, "paid", "cash", 500.0, nil, now, now)
}

func TestRepository_Create(t *testing.T) {
	end := time.Now().AddDate(0, 0, 30)
	sub := &Subscription{
		MemberID:      1,
		PlanID:        2,
		PlanPrice:     500,
		StartDate:     time.Now(),
		EndDate:       &end,
		PaymentStatus: PaymentPaid,
		PaymentMethod: MethodCash,
		AmountPaid:    500,
	}

	t.Run("inserts when member has no active subscription", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM members WHERE id = $1 FOR UPDATE`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec("UPDATE subscriptions").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO subscriptions").
			WillReturnRows(subscriptionRows(10, 1, "active", &end))
		mock.ExpectCommit()

		created, err := repo.Create(context.Background(), sub)

		require.NoError(t, err)
		assert.Equal(t, 10, created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expires an overdue active row before inserting", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		// A member whose previous period lapsed yesterday still has a row with
		// status active. The create transaction lapses it first, so the insert
		// clears the one-active unique index instead of violating it.
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM members WHERE id = $1 FOR UPDATE`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta("status = 'active' AND end_date IS NOT NULL AND end_date < CURRENT_DATE")).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO subscriptions").
			WillReturnRows(subscriptionRows(12, 1, "active", &end))
		mock.ExpectCommit()

		created, err := repo.Create(context.Background(), sub)

		require.NoError(t, err)
		assert.Equal(t, 12, created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on active subscription conflict", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM members WHERE id = $1 FOR UPDATE`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec("UPDATE subscriptions").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.Create(context.Background(), sub)

		assert.ErrorIs(t, err, ErrActiveSubscriptionExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Renew(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	end := time.Now().AddDate(0, 0, 30)
	replacement := &Subscription{
		MemberID:      1,
		PlanID:        2,
		PlanPrice:     500,
		StartDate:     time.Now(),
		EndDate:       &end,
		PaymentStatus: PaymentPending,
		PaymentMethod: MethodCash,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE subscriptions").
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM members WHERE id = $1 FOR UPDATE`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE subscriptions").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO subscriptions").
		WillReturnRows(subscriptionRows(11, 1, "active", &end))
	mock.ExpectCommit()

	created, err := repo.Renew(context.Background(), 10, replacement)

	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	t.Run("active row is cancelled", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectQuery("UPDATE subscriptions").
			WithArgs(10).
			WillReturnRows(subscriptionRows(10, 1, "cancelled", nil))

		sub, err := repo.Cancel(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, sub.Status)
	})

	t.Run("existing but inactive row returns conflict", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectQuery("UPDATE subscriptions").
			WithArgs(10).
			WillReturnRows(subscriptionRows(10, 1, "cancelled", nil))
		mock.ExpectQuery("UPDATE subscriptions").
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		// First call cancels, second finds the row no longer active.
		_, err := repo.Cancel(context.Background(), 10)
		require.NoError(t, err)

		_, err = repo.Cancel(context.Background(), 10)
		assert.ErrorIs(t, err, ErrNotActive)
	})

	t.Run("missing row returns not found", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectQuery("UPDATE subscriptions").
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.Cancel(context.Background(), 99)

		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})
}

func TestRepository_ExpireOverdue(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectExec("UPDATE subscriptions").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ExpireOverdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRepository_GetActiveByMember_NotFound(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery("SELECT").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetActiveByMember(context.Background(), 7)

	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
