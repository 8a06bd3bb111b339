package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wepredict/go-api-server/internal/apperrors"
)

// SQLSTATE class 23505: unique constraint violation, raised by
// register_user and register_user_google on a duplicate email.
const pgUniqueViolation = "23505"

// PostgresRepo calls the stored functions owning user persistence. Each
// call is a single `SELECT * FROM fn(...)` round trip; the functions are
// created by the embedded migrations.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) (*PostgresRepo, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &PostgresRepo{db: db}, nil
}

var _ Repo = (*PostgresRepo)(nil)

func (r *PostgresRepo) RegisterUser(ctx context.Context, email, fullName, passwordHash string) (*User, error) {
	return r.callUserFunction(ctx, "register_user", email, fullName, passwordHash)
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.callUserFunction(ctx, "user_by_email", email)
}

func (r *PostgresRepo) RegisterUserGoogle(ctx context.Context, googleSub, email, fullName string) (*User, error) {
	return r.callUserFunction(ctx, "register_user_google", googleSub, email, nullable(fullName))
}

func (r *PostgresRepo) LoginGoogle(ctx context.Context, googleSub, email, fullName string) (*User, error) {
	return r.callUserFunction(ctx, "login_google", googleSub, email, nullable(fullName))
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.callUserFunction(ctx, "user_by_id", id)
}

// callUserFunction invokes a stored function returning a single user row
// and maps database failures onto the store's closed error set.
func (r *PostgresRepo) callUserFunction(ctx context.Context, fn string, args ...any) (*User, error) {
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("SELECT * FROM %s(%s)", fn, strings.Join(placeholders, ", "))

	var (
		u            User
		passwordHash sql.NullString
		googleSub    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.FullName, &passwordHash, &googleSub, &u.Provider, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, classifyStoreError(fn, err)
	}
	u.PasswordHash = passwordHash.String
	u.GoogleSub = googleSub.String
	return &u, nil
}

func classifyStoreError(fn string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrEmailTaken
	}
	return apperrors.Dependency(err, true, "credential store unavailable")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
