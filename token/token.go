// Package token issues and validates the signed session tokens carried on
// protected requests.
package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wepredict/go-api-server/internal/apperrors"
	"github.com/wepredict/go-api-server/users"
)

// Validation failure reasons. All are surfaced to callers wrapped in an
// authentication-kind error; the reason picks the 401 message.
var (
	ErrMissing   = errors.New("token missing")
	ErrMalformed = errors.New("token malformed")
	ErrExpired   = errors.New("token expired")
	ErrSignature = errors.New("token signature invalid")
)

// Claims is the payload embedded in a session token. It is never
// persisted; validity is re-derived from signature and expiry on every
// protected request.
type Claims struct {
	jwtlib.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// UserID returns the subject as the numeric user identifier.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Manager signs and validates session tokens with a process-wide HMAC
// secret. The secret is read-only after construction, so a single Manager
// is safe for concurrent use.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	nowTime func() time.Time // injectable for testing
}

type Option func(*Manager)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// New creates a Manager. An empty secret is refused outright rather than
// replaced with a default.
func New(secret string, ttl time.Duration, options ...Option) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("[token.New] signing secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	m := &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Issue creates a signed HS256 session token for the user.
func (m *Manager) Issue(user *users.User) (string, error) {
	now := m.nowTime()
	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.New().String(),
		},
		Email:    user.Email,
		Username: user.FullName,
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", apperrors.Wrapf(err, "[Manager.Issue] sign token")
	}
	return signed, nil
}

// Validate parses and verifies a raw token, returning its claims. Failures
// come back authentication-tagged with a reason sentinel: ErrMissing,
// ErrMalformed, ErrExpired or ErrSignature.
func (m *Manager) Validate(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.AuthenticationWrap(ErrMissing, "authorization token required")
	}

	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(raw, claims, m.verificationKey,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(m.nowTime),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !parsed.Valid {
		return nil, apperrors.AuthenticationWrap(ErrMalformed, "invalid token")
	}
	return claims, nil
}

func (m *Manager) verificationKey(t *jwtlib.Token) (any, error) {
	if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, ErrSignature
	}
	return m.secret, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return apperrors.AuthenticationWrap(ErrExpired, "token expired")
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid), errors.Is(err, ErrSignature):
		return apperrors.AuthenticationWrap(ErrSignature, "invalid token signature")
	default:
		return apperrors.AuthenticationWrap(ErrMalformed, "invalid token")
	}
}
