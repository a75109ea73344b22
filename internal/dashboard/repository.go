package dashboard

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Metrics(ctx context.Context) (*Metrics, error)
	PaymentMetrics(ctx context.Context) (*PaymentMetrics, error)
	ExpiringSubscriptions(ctx context.Context, withinDays int) ([]ExpiringSubscription, error)
	RecentCheckIns(ctx context.Context, limit, expiringSoonDays int) ([]RecentCheckIn, error)
	RecentPayments(ctx context.Context, limit int) ([]RecentPayment, error)
	DailyActivity(ctx context.Context, since time.Time) ([]DailyActivity, error)
	PlanMetrics(ctx context.Context, limit int) ([]PlanSubscriptionCount, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Metrics(ctx context.Context) (*Metrics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM attendance WHERE check_out_time IS NULL) AS current_in_gym,
			(SELECT COUNT(*) FROM attendance WHERE date = CURRENT_DATE) AS today_visits,
			(SELECT COUNT(DISTINCT member_id) FROM attendance WHERE date = CURRENT_DATE) AS today_unique_members,
			(SELECT COUNT(*) FROM members) AS total_members,
			(SELECT COUNT(*) FROM members WHERE is_active) AS active_members,
			(SELECT COUNT(*) FROM subscriptions
				WHERE status = 'active' AND (end_date IS NULL OR end_date >= CURRENT_DATE)) AS active_subscriptions
	`

	var m Metrics
	if err := r.db.GetContext(ctx, &m, query); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) PaymentMetrics(ctx context.Context) (*PaymentMetrics, error) {
	// Pending total is the outstanding balance on unsettled current periods.
	query := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date = CURRENT_DATE) AS today_income,
			(SELECT COALESCE(SUM(amount), 0) FROM payments
				WHERE payment_date >= date_trunc('month', CURRENT_DATE)) AS month_income,
			(SELECT COALESCE(SUM(plan_price - amount_paid), 0) FROM subscriptions
				WHERE status = 'active' AND payment_status IN ('pending', 'partial')
				  AND plan_price > amount_paid) AS pending_total
	`

	var m PaymentMetrics
	if err := r.db.GetContext(ctx, &m, query); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ExpiringSubscriptions(ctx context.Context, withinDays int) ([]ExpiringSubscription, error) {
	query := `
		SELECT
			s.id AS subscription_id,
			s.member_id,
			m.first_name AS member_first_name,
			m.last_name_paternal AS member_last_paternal,
			m.phone AS member_phone,
			m.email AS member_email,
			p.name AS plan_name,
			s.end_date,
			(s.end_date - CURRENT_DATE) AS days_remaining
		FROM subscriptions s
		JOIN members m ON s.member_id = m.id
		JOIN plans p ON s.plan_id = p.id
		WHERE s.status = 'active'
		  AND s.end_date IS NOT NULL
		  AND s.end_date >= CURRENT_DATE
		  AND s.end_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY s.end_date ASC
	`

	var subs []ExpiringSubscription
	if err := r.db.SelectContext(ctx, &subs, query, withinDays); err != nil {
		return nil, err
	}
	return subs, nil
}

// RecentCheckIns tags each visit with where the member's subscription stands
// so the front desk can spot lapsing members as they walk in.
func (r *repository) RecentCheckIns(ctx context.Context, limit, expiringSoonDays int) ([]RecentCheckIn, error) {
	query := `
		SELECT
			a.id AS attendance_id,
			a.member_id,
			m.first_name AS member_first_name,
			m.last_name_paternal AS member_last_paternal,
			a.check_in_time,
			CASE
				WHEN s.id IS NULL THEN 'expired'
				WHEN s.end_date IS NOT NULL AND s.end_date <= CURRENT_DATE + $2 * INTERVAL '1 day' THEN 'expiring_soon'
				ELSE 'active'
			END AS subscription_status
		FROM attendance a
		JOIN members m ON a.member_id = m.id
		LEFT JOIN subscriptions s ON s.member_id = a.member_id
			AND s.status = 'active'
			AND (s.end_date IS NULL OR s.end_date >= CURRENT_DATE)
		ORDER BY a.check_in_time DESC
		LIMIT $1
	`

	var recs []RecentCheckIn
	if err := r.db.SelectContext(ctx, &recs, query, limit, expiringSoonDays); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *repository) RecentPayments(ctx context.Context, limit int) ([]RecentPayment, error) {
	query := `
		SELECT
			p.id AS payment_id,
			p.member_id,
			m.first_name AS member_first_name,
			m.last_name_paternal AS member_last_paternal,
			pl.name AS plan_name,
			p.amount,
			p.payment_method,
			p.payment_date
		FROM payments p
		JOIN members m ON p.member_id = m.id
		JOIN subscriptions s ON p.subscription_id = s.id
		JOIN plans pl ON s.plan_id = pl.id
		ORDER BY p.created_at DESC
		LIMIT $1
	`

	var payments []RecentPayment
	if err := r.db.SelectContext(ctx, &payments, query, limit); err != nil {
		return nil, err
	}
	return payments, nil
}

// DailyActivity returns one row per calendar day since the cutoff, zero-filled
// for days without visits or payments.
func (r *repository) DailyActivity(ctx context.Context, since time.Time) ([]DailyActivity, error) {
	query := `
		SELECT
			d.date::date AS date,
			COALESCE(v.visits, 0) AS visits,
			COALESCE(i.income, 0) AS income
		FROM generate_series($1::date, CURRENT_DATE, INTERVAL '1 day') AS d(date)
		LEFT JOIN (
			SELECT date, COUNT(*) AS visits FROM attendance GROUP BY date
		) v ON v.date = d.date
		LEFT JOIN (
			SELECT payment_date, SUM(amount) AS income FROM payments GROUP BY payment_date
		) i ON i.payment_date = d.date
		ORDER BY d.date ASC
	`

	var days []DailyActivity
	if err := r.db.SelectContext(ctx, &days, query, since); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *repository) PlanMetrics(ctx context.Context, limit int) ([]PlanSubscriptionCount, error) {
	query := `
		SELECT
			p.id AS plan_id,
			p.name AS plan_name,
			COUNT(s.id) AS active_count
		FROM plans p
		LEFT JOIN subscriptions s ON s.plan_id = p.id
			AND s.status = 'active'
			AND (s.end_date IS NULL OR s.end_date >= CURRENT_DATE)
		GROUP BY p.id, p.name
		ORDER BY active_count DESC, p.name ASC
		LIMIT $1
	`

	var plans []PlanSubscriptionCount
	if err := r.db.SelectContext(ctx, &plans, query, limit); err != nil {
		return nil, err
	}
	return plans, nil
}
