package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateWithToken(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("authuser", "hash", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))
	mock.ExpectQuery("INSERT INTO auth_tokens").
		WithArgs("key123", int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	user := &domain.User{Username: "authuser", PasswordHash: "hash", IsActive: true}
	token, err := repo.CreateWithToken(context.Background(), user, "key123")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "key123", token.Key)
	assert.Equal(t, int64(3), token.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("dup", "", false).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CreateWithToken(context.Background(), &domain.User{Username: "dup"}, "k")
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByToken(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("FROM auth_tokens t JOIN users u").
		WithArgs("good").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "is_active", "created_at"}).
			AddRow(int64(1), "testuser", "hash", true, now))
	mock.ExpectQuery("FROM auth_tokens t JOIN users u").
		WithArgs("bad").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "testuser", u.Username)

	_, err = repo.GetByToken(context.Background(), "bad")
	assert.True(t, domain.IsNotFound(err))
}

func TestUserRepository_TokenForReturnsExisting(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("ON CONFLICT \\(user_id\\)").
		WithArgs("fresh", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"key", "created_at"}).AddRow("existing", time.Now()))

	token, err := repo.TokenFor(context.Background(), 1, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "existing", token.Key)
}

func TestMigrate(t *testing.T) {
	mock := newMock(t)
	for range schema {
		mock.ExpectExec("CREATE (TABLE|INDEX) IF NOT EXISTS").
			WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}

	require.NoError(t, Migrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
