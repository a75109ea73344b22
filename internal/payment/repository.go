package payment

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
)

var ErrPaymentNotFound = errors.New("payment not found")

const detailColumns = `
	p.id, p.member_id, p.subscription_id, p.amount, p.payment_method,
	p.payment_date, p.notes, p.created_at,
	m.first_name AS member_first_name,
	m.last_name_paternal AS member_last_paternal,
	pl.name AS plan_name`

const detailJoins = `
	FROM payments p
	JOIN members m ON p.member_id = m.id
	JOIN subscriptions s ON p.subscription_id = s.id
	JOIN plans pl ON s.plan_id = pl.id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payments (member_id, subscription_id, amount, payment_method, payment_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, member_id, subscription_id, amount, payment_method, payment_date, notes, created_at
	`

	var created Payment
	err = tx.GetContext(ctx, &created, query,
		p.MemberID, p.SubscriptionID, p.Amount, p.PaymentMethod, p.PaymentDate, p.Notes)
	if err != nil {
		return nil, err
	}

	// The subscription's payment fields follow the payment total so partial
	// payments accumulate toward paid.
	if _, err := tx.ExecContext(ctx, `
		UPDATE subscriptions s
		SET amount_paid = t.total,
			payment_status = CASE WHEN t.total >= s.plan_price THEN 'paid' ELSE 'partial' END,
			updated_at = NOW()
		FROM (
			SELECT COALESCE(SUM(amount), 0) AS total
			FROM payments
			WHERE subscription_id = $1
		) t
		WHERE s.id = $1
	`, p.SubscriptionID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*PaymentWithDetails, error) {
	query := `SELECT` + detailColumns + detailJoins + ` WHERE p.id = $1`

	var p PaymentWithDetails
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]PaymentWithDetails, error) {
	query := `SELECT` + detailColumns + detailJoins + ` WHERE 1=1`
	args := []interface{}{}

	if filter.MemberID > 0 {
		args = append(args, filter.MemberID)
		query += ` AND p.member_id = $` + strconv.Itoa(len(args))
	}
	if filter.SubscriptionID > 0 {
		args = append(args, filter.SubscriptionID)
		query += ` AND p.subscription_id = $` + strconv.Itoa(len(args))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		query += ` AND p.payment_method = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND p.payment_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND p.payment_date <= $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY p.payment_date DESC, p.id DESC`
	args = append(args, filter.Skip)
	query += ` OFFSET $` + strconv.Itoa(len(args))
	args = append(args, filter.Limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	var payments []PaymentWithDetails
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}

	return payments, nil
}
