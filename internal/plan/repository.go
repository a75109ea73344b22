package plan

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPlanNotFound = errors.New("plan not found")

const planColumns = `id, name, price, duration_days, description, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, price float64, durationDays int, description *string) (*Plan, error) {
	query := `
		INSERT INTO plans (name, price, duration_days, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + planColumns

	var p Plan
	err := r.db.GetContext(ctx, &p, query, name, price, durationDays, description)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, skip, limit int) ([]Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY price OFFSET $1 LIMIT $2`

	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, query, skip, limit)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error) {
	query := `
		UPDATE plans SET
			name = COALESCE($2, name),
			price = COALESCE($3, price),
			duration_days = COALESCE($4, duration_days),
			description = COALESCE($5, description),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + planColumns

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id, req.Name, req.Price, req.DurationDays, req.Description, req.IsActive)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Deactivate is the only delete path. Historical subscriptions keep their
// plan reference, so plans are never physically removed.
func (r *repository) Deactivate(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE plans SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

func (r *repository) NameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM plans WHERE name = $1 AND id <> $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, name, excludeID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
