package report

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	IncomeTotal(ctx context.Context, start, end time.Time) (float64, error)
	IncomeByPlan(ctx context.Context, start, end time.Time) ([]IncomeByPlan, error)
	IncomeByMethod(ctx context.Context, start, end time.Time) ([]IncomeByMethod, error)
	NewMembers(ctx context.Context, start, end time.Time) (int, error)
	TotalVisits(ctx context.Context, start, end time.Time) (int, error)
	TopMembers(ctx context.Context, start, end time.Time, limit int) ([]TopMember, error)
	MemberCounts(ctx context.Context) (active, total int, err error)
	ExpiredInRange(ctx context.Context, start, end time.Time) (int, error)
	RenewedInRange(ctx context.Context, start, end time.Time) (int, error)
	MonthlySummaries(ctx context.Context, months int) ([]MonthSummary, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) IncomeTotal(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE payment_date BETWEEN $1 AND $2
	`, start, end)
	return total, err
}

func (r *repository) IncomeByPlan(ctx context.Context, start, end time.Time) ([]IncomeByPlan, error) {
	query := `
		SELECT pl.name AS plan_name, SUM(p.amount) AS total, COUNT(*) AS count
		FROM payments p
		JOIN subscriptions s ON p.subscription_id = s.id
		JOIN plans pl ON s.plan_id = pl.id
		WHERE p.payment_date BETWEEN $1 AND $2
		GROUP BY pl.name
		ORDER BY total DESC
	`

	var rows []IncomeByPlan
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) IncomeByMethod(ctx context.Context, start, end time.Time) ([]IncomeByMethod, error) {
	query := `
		SELECT payment_method, SUM(amount) AS total, COUNT(*) AS count
		FROM payments
		WHERE payment_date BETWEEN $1 AND $2
		GROUP BY payment_method
		ORDER BY total DESC
	`

	var rows []IncomeByMethod
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) NewMembers(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM members WHERE registration_date BETWEEN $1 AND $2
	`, start, end)
	return count, err
}

func (r *repository) TotalVisits(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM attendance WHERE date BETWEEN $1 AND $2
	`, start, end)
	return count, err
}

func (r *repository) TopMembers(ctx context.Context, start, end time.Time, limit int) ([]TopMember, error) {
	query := `
		SELECT
			a.member_id,
			m.first_name AS member_first_name,
			m.last_name_paternal AS member_last_paternal,
			COUNT(*) AS visit_count
		FROM attendance a
		JOIN members m ON a.member_id = m.id
		WHERE a.date BETWEEN $1 AND $2
		GROUP BY a.member_id, m.first_name, m.last_name_paternal
		ORDER BY visit_count DESC, m.last_name_paternal ASC
		LIMIT $3
	`

	var rows []TopMember
	if err := r.db.SelectContext(ctx, &rows, query, start, end, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) MemberCounts(ctx context.Context) (int, int, error) {
	var counts struct {
		Active int `db:"active"`
		Total  int `db:"total"`
	}
	err := r.db.GetContext(ctx, &counts, `
		SELECT COUNT(*) FILTER (WHERE is_active) AS active, COUNT(*) AS total FROM members
	`)
	return counts.Active, counts.Total, err
}

func (r *repository) ExpiredInRange(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM subscriptions
		WHERE status = 'expired' AND end_date BETWEEN $1 AND $2
	`, start, end)
	return count, err
}

// RenewedInRange counts periods started in the window by members who held an
// earlier subscription, which is what the renew action always produces.
func (r *repository) RenewedInRange(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM subscriptions s
		WHERE s.start_date BETWEEN $1 AND $2
		  AND EXISTS (
			SELECT 1 FROM subscriptions prior
			WHERE prior.member_id = s.member_id AND prior.start_date < s.start_date
		  )
	`, start, end)
	return count, err
}

func (r *repository) MonthlySummaries(ctx context.Context, months int) ([]MonthSummary, error) {
	query := `
		SELECT
			mo.month::date AS month,
			COALESCE(i.income, 0) AS income,
			COALESCE(nm.new_members, 0) AS new_members,
			COALESCE(v.visits, 0) AS visits
		FROM generate_series(
			date_trunc('month', CURRENT_DATE) - ($1 - 1) * INTERVAL '1 month',
			date_trunc('month', CURRENT_DATE),
			INTERVAL '1 month'
		) AS mo(month)
		LEFT JOIN (
			SELECT date_trunc('month', payment_date) AS month, SUM(amount) AS income
			FROM payments GROUP BY 1
		) i ON i.month = mo.month
		LEFT JOIN (
			SELECT date_trunc('month', registration_date) AS month, COUNT(*) AS new_members
			FROM members GROUP BY 1
		) nm ON nm.month = mo.month
		LEFT JOIN (
			SELECT date_trunc('month', date) AS month, COUNT(*) AS visits
			FROM attendance GROUP BY 1
		) v ON v.month = mo.month
		ORDER BY mo.month ASC
	`

	var rows []MonthSummary
	if err := r.db.SelectContext(ctx, &rows, query, months); err != nil {
		return nil, err
	}
	return rows, nil
}
