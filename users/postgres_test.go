package users_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/wepredict/go-api-server/internal/apperrors"
	"github.com/wepredict/go-api-server/users"
)

var userColumns = []string{"id", "email", "full_name", "password_hash", "google_sub", "provider", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*users.PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := users.NewPostgresRepo(db)
	require.NoError(t, err)
	return repo, mock
}

func TestPostgresRepoRegisterUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM register_user($1, $2, $3)")).
		WithArgs("a@x.com", "A", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(1), "a@x.com", "A", "$2a$10$hash", nil, "local", now, now))

	u, err := repo.RegisterUser(context.Background(), "a@x.com", "A", "$2a$10$hash")
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, users.ProviderLocal, u.Provider)
	require.Equal(t, "$2a$10$hash", u.PasswordHash)
	require.Empty(t, u.GoogleSub)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepoRegisterUserDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM register_user($1, $2, $3)")).
		WithArgs("a@x.com", "A", "$2a$10$hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.RegisterUser(context.Background(), "a@x.com", "A", "$2a$10$hash")
	require.ErrorIs(t, err, users.ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepoGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM user_by_email($1)")).
		WithArgs("missing@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByEmail(context.Background(), "missing@x.com")
	require.ErrorIs(t, err, users.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepoLoginGoogle(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("name passed through", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM login_google($1, $2, $3)")).
			WithArgs("sub-123", "g@x.com", "G User").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(int64(2), "g@x.com", "G User", nil, "sub-123", "google", now, now))

		u, err := repo.LoginGoogle(context.Background(), "sub-123", "g@x.com", "G User")
		require.NoError(t, err)
		require.Equal(t, "sub-123", u.GoogleSub)
		require.Equal(t, users.ProviderGoogle, u.Provider)
		require.Empty(t, u.PasswordHash)
	})

	t.Run("empty name sent as NULL", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM login_google($1, $2, $3)")).
			WithArgs("sub-123", "g@x.com", nil).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(int64(2), "g@x.com", "g@x.com", nil, "sub-123", "google", now, now))

		_, err := repo.LoginGoogle(context.Background(), "sub-123", "g@x.com", "")
		require.NoError(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepoDependencyFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM user_by_id($1)")).
		WithArgs(int64(7)).
		WillReturnError(context.DeadlineExceeded)

	_, err := repo.GetByID(context.Background(), 7)
	require.True(t, apperrors.IsKind(err, apperrors.KindDependency))

	var tagged *apperrors.Error
	require.ErrorAs(t, err, &tagged)
	require.True(t, tagged.Retryable)
	require.NoError(t, mock.ExpectationsWereMet())
}
