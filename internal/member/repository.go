package member

import (
	"context"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

const memberColumns = `id, first_name, last_name_paternal, last_name_maternal, email, phone,
	date_of_birth, emergency_contact, emergency_phone, registration_date, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) (*Member, error) {
	query := `
		INSERT INTO members (first_name, last_name_paternal, last_name_maternal, email, phone,
			date_of_birth, emergency_contact, emergency_phone, registration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_DATE)
		RETURNING ` + memberColumns

	var created Member
	err := r.db.GetContext(ctx, &created, query,
		m.FirstName, m.LastNamePaternal, m.LastNameMaternal, m.Email, m.Phone,
		m.DateOfBirth, m.EmergencyContact, m.EmergencyPhone)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateFields) (*Member, error) {
	query := `
		UPDATE members SET
			first_name = COALESCE($2, first_name),
			last_name_paternal = COALESCE($3, last_name_paternal),
			last_name_maternal = COALESCE($4, last_name_maternal),
			email = COALESCE($5, email),
			phone = COALESCE($6, phone),
			date_of_birth = COALESCE($7, date_of_birth),
			emergency_contact = COALESCE($8, emergency_contact),
			emergency_phone = COALESCE($9, emergency_phone),
			is_active = COALESCE($10, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, id,
		req.FirstName, req.LastNamePaternal, req.LastNameMaternal, req.Email, req.Phone,
		req.DateOfBirth, req.EmergencyContact, req.EmergencyPhone, req.IsActive)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// List applies search, active filter and pagination. Search folds case and
// accents so "garcia" matches "García".
func (r *repository) List(ctx context.Context, filter ListFilter) ([]Member, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argn := 1

	if filter.Search != "" {
		where += ` AND (
			unaccent(lower(first_name || ' ' || last_name_paternal || ' ' || COALESCE(last_name_maternal, '')))
				LIKE unaccent(lower('%' || $` + strconv.Itoa(argn) + ` || '%'))
			OR lower(COALESCE(email, '')) LIKE lower('%' || $` + strconv.Itoa(argn) + ` || '%')
			OR COALESCE(phone, '') LIKE '%' || $` + strconv.Itoa(argn) + ` || '%'
		)`
		args = append(args, filter.Search)
		argn++
	}
	if filter.ActiveOnly != nil {
		where += ` AND is_active = $` + strconv.Itoa(argn)
		args = append(args, *filter.ActiveOnly)
		argn++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM members`+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + memberColumns + ` FROM members` + where +
		` ORDER BY last_name_paternal, first_name OFFSET $` + strconv.Itoa(argn) + ` LIMIT $` + strconv.Itoa(argn+1)
	args = append(args, filter.Skip, filter.Limit)

	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *repository) ToggleActive(ctx context.Context, id int) (*Member, error) {
	query := `
		UPDATE members
		SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE email = $1 AND id <> $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
