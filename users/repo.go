package users

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("user not found")
)

// Repo is the credential store: a thin wrapper around database-side stored
// functions that own user persistence. Implementations return ErrEmailTaken
// and ErrNotFound for the two expected failures and a dependency-tagged
// error when the store itself is unreachable.
type Repo interface {
	// RegisterUser creates a local account. The password arrives
	// pre-hashed; the store never sees plaintext.
	RegisterUser(ctx context.Context, email, fullName, passwordHash string) (*User, error)

	// GetByEmail fetches a user including the password hash, for
	// credential verification.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// RegisterUserGoogle creates a Google-linked account.
	RegisterUserGoogle(ctx context.Context, googleSub, email, fullName string) (*User, error)

	// LoginGoogle returns the account linked to googleSub, creating it
	// when absent.
	LoginGoogle(ctx context.Context, googleSub, email, fullName string) (*User, error)

	// GetByID fetches a user for the profile endpoint.
	GetByID(ctx context.Context, id int64) (*User, error)
}
