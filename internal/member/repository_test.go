package member

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

func memberColumnsList() []string {
	return []string{
		"id", "first_name", "last_name_paternal", "last_name_maternal", "email", "phone",
		"date_of_birth", "emergency_contact", "emergency_phone", "registration_date",
		"is_active", "created_at", "updated_at",
	}
}

func memberRow(id int, firstName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(memberColumnsList()).
		AddRow(id, firstName, "García", nil, "juan@example.com", "5512345678",
			nil, nil, nil, now, true, now, now)
}

func TestRepository_Create(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	email := "juan@example.com"
	phone := "5512345678"

	mock.ExpectQuery("INSERT INTO members").
		WillReturnRows(memberRow(1, "Juan"))

	created, err := repo.Create(context.Background(), &Member{
		FirstName:        "Juan",
		LastNamePaternal: "García",
		Email:            &email,
		Phone:            &phone,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Juan", created.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	t.Run("search folds into name, email and phone", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectQuery("SELECT COUNT").
			WithArgs("garcia").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT id, first_name").
			WithArgs("garcia", 0, 20).
			WillReturnRows(memberRow(1, "Juan"))

		members, total, err := repo.List(context.Background(), ListFilter{
			Search: "garcia",
			Skip:   0,
			Limit:  20,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, members, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active filter is numbered after search", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		active := true
		mock.ExpectQuery("SELECT COUNT").
			WithArgs("garcia", true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT id, first_name").
			WithArgs("garcia", true, 0, 20).
			WillReturnRows(sqlmock.NewRows(memberColumnsList()))

		members, total, err := repo.List(context.Background(), ListFilter{
			Search:     "garcia",
			ActiveOnly: &active,
			Skip:       0,
			Limit:      20,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, members)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ToggleActive(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery("UPDATE members").
		WithArgs(1).
		WillReturnRows(memberRow(1, "Juan"))

	m, err := repo.ToggleActive(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)
}

func TestRepository_Delete(t *testing.T) {
	t.Run("removes the row", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM members WHERE id = $1`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 1))
	})

	t.Run("missing row returns not found", func(t *testing.T) {
		repo, mock, closer := setupMock(t)
		defer closer()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM members WHERE id = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrMemberNotFound)
	})
}

func TestRepository_EmailExists(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("juan@example.com", 0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "juan@example.com", 0)

	require.NoError(t, err)
	assert.True(t, exists)
}
