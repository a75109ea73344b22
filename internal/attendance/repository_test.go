package attendance

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

func attendanceColumnsList() []string {
	return []string{
		"id", "member_id", "subscription_id", "check_in_time", "check_out_time",
		"date", "duration_minutes", "notes", "created_at",
	}
}

func TestRepository_CheckIn(t *testing.T) {
	t.Run("inserts when member has no open session", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		now := time.Now()
		subID := 20

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM members WHERE id = $1 FOR UPDATE`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO attendance").
			WillReturnRows(sqlmock.NewRows(attendanceColumnsList()).
				AddRow(100, 1, subID, now, nil, now, nil, nil, now))
		mock.ExpectCommit()

		rec, err := repo.CheckIn(context.Background(), 1, &subID, nil)

		require.NoError(t, err)
		assert.Equal(t, 100, rec.ID)
		assert.Nil(t, rec.CheckOutTime)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a session is already open", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM members WHERE id = $1 FOR UPDATE`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.CheckIn(context.Background(), 1, nil, nil)

		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CheckOut(t *testing.T) {
	t.Run("closes the session and reports the duration", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		checkIn := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
		checkOut := checkIn.Add(105 * time.Minute)

		mock.ExpectQuery("UPDATE attendance").
			WithArgs(100, nil).
			WillReturnRows(sqlmock.NewRows(attendanceColumnsList()).
				AddRow(100, 1, 20, checkIn, checkOut, checkIn, 105, nil, checkIn))

		rec, err := repo.CheckOut(context.Background(), 100, nil)

		require.NoError(t, err)
		require.NotNil(t, rec.DurationMinutes)
		assert.Equal(t, 105, *rec.DurationMinutes)
	})

	t.Run("already closed session returns conflict", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectQuery("UPDATE attendance").
			WithArgs(100, nil).
			WillReturnRows(sqlmock.NewRows(attendanceColumnsList()))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(100).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.CheckOut(context.Background(), 100, nil)

		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	})

	t.Run("missing record returns not found", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectQuery("UPDATE attendance").
			WithArgs(999, nil).
			WillReturnRows(sqlmock.NewRows(attendanceColumnsList()))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(999).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.CheckOut(context.Background(), 999, nil)

		assert.ErrorIs(t, err, ErrAttendanceNotFound)
	})
}

func TestRepository_DailyStats(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM attendance WHERE date = $1`)).
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(DISTINCT member_id) FROM attendance WHERE date = $1`)).
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
	mock.ExpectQuery("SELECT AVG").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(62.35))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM attendance WHERE check_out_time IS NULL`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	stats, err := repo.DailyStats(context.Background(), day, true)

	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalVisits)
	assert.Equal(t, 9, stats.UniqueMembers)
	require.NotNil(t, stats.AverageDurationMinutes)
	assert.Equal(t, 62.4, *stats.AverageDurationMinutes)
	assert.Equal(t, 3, stats.CurrentMembersInGym)
}
