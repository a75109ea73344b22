package subscription

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSubscriptionNotFound     = errors.New("subscription not found")
	ErrActiveSubscriptionExists = errors.New("member already has an active subscription")
	ErrNotActive                = errors.New("subscription is not active")
)

const subscriptionColumns = `id, member_id, plan_id, plan_price, start_date, end_date, status,
	payment_status, payment_method, amount_paid, notes, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sub *Subscription) (*Subscription, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	created, err := insertSubscription(ctx, tx, sub)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

// insertSubscription serializes the one-active-per-member check against
// concurrent creates by locking the member row first. The partial unique
// index uq_subscriptions_one_active backs the same invariant in the schema.
func insertSubscription(ctx context.Context, tx *sqlx.Tx, sub *Subscription) (*Subscription, error) {
	var memberID int
	err := tx.GetContext(ctx, &memberID, `SELECT id FROM members WHERE id = $1 FOR UPDATE`, sub.MemberID)
	if err != nil {
		return nil, err
	}

	// An overdue row still marked active does not block a new period, but it
	// would trip the one-active index on insert. Lapse it here so the EXISTS
	// check below matches the index predicate exactly.
	if _, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE member_id = $1 AND status = 'active' AND end_date IS NOT NULL AND end_date < CURRENT_DATE
	`, sub.MemberID); err != nil {
		return nil, err
	}

	var exists bool
	err = tx.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM subscriptions
			WHERE member_id = $1 AND status = 'active'
		)
	`, sub.MemberID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrActiveSubscriptionExists
	}

	query := `
		INSERT INTO subscriptions (member_id, plan_id, plan_price, start_date, end_date,
			status, payment_status, payment_method, amount_paid, notes)
		VALUES ($1, $2, $3, $4, $5, 'active', $6, $7, $8, $9)
		RETURNING ` + subscriptionColumns

	var created Subscription
	err = tx.GetContext(ctx, &created, query,
		sub.MemberID, sub.PlanID, sub.PlanPrice, sub.StartDate, sub.EndDate,
		sub.PaymentStatus, sub.PaymentMethod, sub.AmountPaid, sub.Notes)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Renew(ctx context.Context, currentID int, replacement *Subscription) (*Subscription, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Supersede the current period first so the one-active index admits the
	// replacement row. A current subscription that already lapsed to expired
	// is left as is.
	if _, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`, currentID); err != nil {
		return nil, err
	}

	created, err := insertSubscription(ctx, tx, replacement)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) GetActiveByMember(ctx context.Context, memberID int) (*Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE member_id = $1
		  AND status = 'active'
		  AND (end_date IS NULL OR end_date >= CURRENT_DATE)
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]SubscriptionWithDetails, error) {
	query := `
		SELECT
			s.id, s.member_id, s.plan_id, s.plan_price, s.start_date, s.end_date, s.status,
			s.payment_status, s.payment_method, s.amount_paid, s.notes, s.created_at, s.updated_at,
			m.first_name AS member_first_name,
			m.last_name_paternal AS member_last_paternal,
			p.name AS plan_name,
			p.duration_days AS plan_duration_days
		FROM subscriptions s
		JOIN members m ON s.member_id = m.id
		JOIN plans p ON s.plan_id = p.id
		WHERE ($1 = '' OR s.status = $1)
		  AND ($2 = 0 OR s.member_id = $2)
		  AND ($3 = '' OR unaccent(lower(m.first_name || ' ' || m.last_name_paternal || ' ' || COALESCE(m.last_name_maternal, '')))
			LIKE unaccent(lower('%' || $3 || '%')))
		ORDER BY s.created_at DESC
		OFFSET $4 LIMIT $5
	`

	var subs []SubscriptionWithDetails
	err := r.db.SelectContext(ctx, &subs, query,
		filter.Status, filter.MemberID, filter.Search, filter.Skip, filter.Limit)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *repository) Cancel(ctx context.Context, id int) (*Subscription, error) {
	query := `
		UPDATE subscriptions
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING ` + subscriptionColumns

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, id)
	if err == nil {
		return &sub, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Distinguish a missing row from one that is no longer active.
	exists, err := rowExists(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSubscriptionNotFound
	}
	return nil, ErrNotActive
}

func (r *repository) Update(ctx context.Context, id int, req UpdateSubscriptionRequest) (*Subscription, error) {
	query := `
		UPDATE subscriptions SET
			status = COALESCE($2, status),
			payment_status = COALESCE($3, payment_status),
			amount_paid = COALESCE($4, amount_paid),
			notes = COALESCE($5, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + subscriptionColumns

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, id, req.Status, req.PaymentStatus, req.AmountPaid, req.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

func (r *repository) ExpireOverdue(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date < CURRENT_DATE
	`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func rowExists(ctx context.Context, db *sqlx.DB, id int) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE id = $1)`, id)
	return exists, err
}
