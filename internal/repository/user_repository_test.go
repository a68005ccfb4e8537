package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role"}).
		AddRow(1, "admin", "admin@example.com", "hash", "SUPER_ADMIN")
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs(1, 1).
		WillReturnRows(rows)

	user, err := repo.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	queryErr := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("admin", 1).
		WillReturnError(queryErr)

	_, err := repo.FindByUsername("admin")
	require.ErrorIs(t, err, queryErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM "users"`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(7))
	require.NoError(t, mock.ExpectationsWereMet())
}
