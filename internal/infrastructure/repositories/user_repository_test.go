package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hushryd/authsvc/domain"
)

func setupTestDB(t *testing.T) (domain.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewUserRepository(gdb), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "phone", "password", "role", "is_verified", "created_at", "updated_at", "deleted_at",
	}).AddRow(1, "rider@example.com", "Asha", "Rao", "9876543210", "", "rider", true, time.Now(), time.Now(), nil)
}

func TestUserRepositoryImpl_FindByPhone(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE phone = \\?").
		WithArgs("9876543210", 1).
		WillReturnRows(userRows())

	user, err := repo.FindByPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "rider@example.com", user.Email)
	assert.Equal(t, "9876543210", user.Phone)
	assert.Equal(t, "rider", user.Role)
	assert.True(t, user.IsVerified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryImpl_FindByPhone_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE phone = \\?").
		WithArgs("9000000000", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByPhone(context.Background(), "9000000000")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_FindByEmail_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_MarkVerified(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkVerified(context.Background(), 1)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
