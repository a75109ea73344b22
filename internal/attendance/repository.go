package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("member is already checked in")
	ErrAlreadyCheckedOut  = errors.New("attendance record is already closed")
)

const attendanceColumns = `id, member_id, subscription_id, check_in_time, check_out_time,
	date, duration_minutes, notes, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CheckIn serializes the one-open-record-per-member check against concurrent
// check-ins by locking the member row first. The partial unique index
// uq_attendance_one_open backs the same invariant in the schema.
func (r *repository) CheckIn(ctx context.Context, memberID int, subscriptionID *int, notes *string) (*Attendance, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lockedID int
	if err := tx.GetContext(ctx, &lockedID, `SELECT id FROM members WHERE id = $1 FOR UPDATE`, memberID); err != nil {
		return nil, err
	}

	var open bool
	err = tx.GetContext(ctx, &open, `
		SELECT EXISTS(
			SELECT 1 FROM attendance
			WHERE member_id = $1 AND check_out_time IS NULL
		)
	`, memberID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrAlreadyCheckedIn
	}

	query := `
		INSERT INTO attendance (member_id, subscription_id, check_in_time, date, notes)
		VALUES ($1, $2, NOW(), CURRENT_DATE, $3)
		RETURNING ` + attendanceColumns

	var rec Attendance
	if err := tx.GetContext(ctx, &rec, query, memberID, subscriptionID, notes); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) CheckOut(ctx context.Context, id int, notes *string) (*Attendance, error) {
	query := `
		UPDATE attendance
		SET check_out_time = NOW(),
			duration_minutes = ROUND(EXTRACT(EPOCH FROM (NOW() - check_in_time)) / 60)::int,
			notes = COALESCE($2, notes)
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING ` + attendanceColumns

	var rec Attendance
	err := r.db.GetContext(ctx, &rec, query, id, notes)
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Distinguish a missing record from one that is already closed.
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM attendance WHERE id = $1)`, id); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAttendanceNotFound
	}
	return nil, ErrAlreadyCheckedOut
}

func (r *repository) GetByID(ctx context.Context, id int) (*Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`

	var rec Attendance
	err := r.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	return &rec, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE 1=1`
	args := []interface{}{}

	if filter.MemberID > 0 {
		args = append(args, filter.MemberID)
		query += ` AND member_id = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}
	if filter.OnlyActive {
		query += ` AND check_out_time IS NULL`
	}

	query += ` ORDER BY check_in_time DESC`
	args = append(args, filter.Skip)
	query += ` OFFSET $` + strconv.Itoa(len(args))
	args = append(args, filter.Limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	var recs []Attendance
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, err
	}

	return recs, nil
}

func (r *repository) ListCurrentInGym(ctx context.Context) ([]AttendanceWithMember, error) {
	query := `
		SELECT
			a.id, a.member_id, a.subscription_id, a.check_in_time, a.check_out_time,
			a.date, a.duration_minutes, a.notes, a.created_at,
			m.first_name AS member_first_name,
			m.last_name_paternal AS member_last_paternal,
			m.email AS member_email,
			m.phone AS member_phone
		FROM attendance a
		JOIN members m ON a.member_id = m.id
		WHERE a.check_out_time IS NULL
		ORDER BY a.check_in_time ASC
	`

	var recs []AttendanceWithMember
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, err
	}

	return recs, nil
}

func (r *repository) MemberHistory(ctx context.Context, memberID int, since time.Time) ([]Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE member_id = $1 AND date >= $2
		ORDER BY check_in_time DESC
	`

	var recs []Attendance
	if err := r.db.SelectContext(ctx, &recs, query, memberID, since); err != nil {
		return nil, err
	}

	return recs, nil
}

func (r *repository) DailyStats(ctx context.Context, targetDate time.Time, includeOpen bool) (*DailyStats, error) {
	var stats DailyStats
	err := r.db.GetContext(ctx, &stats.TotalVisits,
		`SELECT COUNT(*) FROM attendance WHERE date = $1`, targetDate)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.UniqueMembers,
		`SELECT COUNT(DISTINCT member_id) FROM attendance WHERE date = $1`, targetDate)
	if err != nil {
		return nil, err
	}

	// Average over completed sessions only; open ones have no duration yet.
	var avg sql.NullFloat64
	err = r.db.GetContext(ctx, &avg, `
		SELECT AVG(duration_minutes)
		FROM attendance
		WHERE date = $1 AND duration_minutes IS NOT NULL
	`, targetDate)
	if err != nil {
		return nil, err
	}
	if avg.Valid {
		rounded := float64(int(avg.Float64*10+0.5)) / 10
		stats.AverageDurationMinutes = &rounded
	}

	if includeOpen {
		err = r.db.GetContext(ctx, &stats.CurrentMembersInGym,
			`SELECT COUNT(*) FROM attendance WHERE check_out_time IS NULL`)
		if err != nil {
			return nil, err
		}
	}

	return &stats, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}
