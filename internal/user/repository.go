package user

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, email, fullName, passwordHash, role string) (*User, error) {
	query := `
		INSERT INTO users (username, email, full_name, password_hash, role)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id, username, email, full_name, password_hash, role, is_active, created_at
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, username, email, fullName, passwordHash, role)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, full_name, password_hash, role, is_active, created_at
		FROM users
		WHERE username = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, email, full_name, password_hash, role, is_active, created_at
		FROM users
		WHERE id = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}
