package users

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Provider identifies the authentication method a user record was created
// with.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`                // User's email address, unique
	FullName     string    `json:"full_name"`            // Display name
	PasswordHash string    `json:"-"`                    // Hashed password, local accounts only - never serialize
	GoogleSub    string    `json:"google_sub,omitempty"` // Google subject, linked accounts only
	Provider     Provider  `json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user with the password hash stripped.
// Every user handed to a caller outside the auth service goes through this.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	s := *u
	s.PasswordHash = ""
	return &s
}

// HasLocalPassword reports whether the account can log in with a password.
func (u *User) HasLocalPassword() bool {
	return u.PasswordHash != ""
}

// ValidatePassword checks the registration password rule.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	return nil
}

// HashPassword hashes a plaintext password with bcrypt. Each call salts
// independently, so two hashes of the same input differ; comparison goes
// through CheckPasswordHash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
