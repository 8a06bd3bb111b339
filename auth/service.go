// Package auth composes the credential store, the Google identity
// verifier and the token manager into the user-facing authentication
// flows.
package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wepredict/go-api-server/googleauth"
	"github.com/wepredict/go-api-server/internal/apperrors"
	"github.com/wepredict/go-api-server/token"
	"github.com/wepredict/go-api-server/users"
)

// Result is the transient outcome of a successful authentication flow.
// The user is always sanitized; the token is a signed session token.
// Consumed once by the handler and discarded.
type Result struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// Service implements the five authentication operations. It holds no
// per-request state: every call operates only on its own input plus the
// read-only collaborators, so concurrent calls are safe.
type Service struct {
	repo     users.Repo
	verifier googleauth.Verifier
	tokens   *token.Manager
}

func NewService(repo users.Repo, verifier googleauth.Verifier, tokens *token.Manager) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[auth.NewService] users repo is required")
	}
	if verifier == nil {
		return nil, errors.New("[auth.NewService] google verifier is required")
	}
	if tokens == nil {
		return nil, errors.New("[auth.NewService] token manager is required")
	}
	return &Service{repo: repo, verifier: verifier, tokens: tokens}, nil
}

// Register creates a local account. A duplicate email or weak password is
// a validation failure.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (*Result, error) {
	if err := users.ValidatePassword(password); err != nil {
		return nil, apperrors.ValidationWrap(err, err.Error())
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] hash password")
	}

	user, err := s.repo.RegisterUser(ctx, email, fullName, hash)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, apperrors.ValidationWrap(err, "email already registered")
		}
		return nil, s.classify(err, apperrors.Validation("could not register user"), "[Service.Register]")
	}
	return s.loggedIn(user)
}

// Login verifies a local password. Unknown email, wrong password and a
// Google-only account all fail with the same authentication kind; only
// the last carries a distinct message.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, apperrors.Authentication("incorrect email or password")
		}
		return nil, s.classify(err, apperrors.Authentication("could not verify credentials"), "[Service.Login]")
	}

	if !user.HasLocalPassword() {
		return nil, apperrors.Authentication("this account has no local password, sign in with Google")
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.Authentication("incorrect email or password")
	}
	return s.loggedIn(user)
}

// RegisterWithGoogle creates an account from an already-verified Google
// identity (legacy flow where the frontend did the verification).
func (s *Service) RegisterWithGoogle(ctx context.Context, googleSub, email, fullName string) (*Result, error) {
	user, err := s.repo.RegisterUserGoogle(ctx, googleSub, email, fullName)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, apperrors.ValidationWrap(err, "email already registered")
		}
		return nil, s.classify(err, apperrors.Validation("could not register user with Google"), "[Service.RegisterWithGoogle]")
	}
	return s.loggedIn(user)
}

// LoginWithGoogle signs in the account linked to googleSub, creating it
// on first sight.
func (s *Service) LoginWithGoogle(ctx context.Context, googleSub, email, fullName string) (*Result, error) {
	user, err := s.repo.LoginGoogle(ctx, googleSub, email, fullName)
	if err != nil {
		return nil, s.classify(err, apperrors.Authentication("could not sign in with Google"), "[Service.LoginWithGoogle]")
	}
	return s.loggedIn(user)
}

// AuthenticateWithGoogleToken verifies a raw Google ID token and then
// logs in or registers the identity it carries. Verifier failures
// propagate verbatim and never reach the credential store.
func (s *Service) AuthenticateWithGoogleToken(ctx context.Context, rawIDToken string) (*Result, error) {
	identity, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperrors.ValidationWrap(err, "could not authenticate with Google")
	}
	return s.LoginWithGoogle(ctx, identity.Sub, identity.Email, identity.FullName)
}

// Profile returns the sanitized user for an authenticated subject.
func (s *Service) Profile(ctx context.Context, userID int64) (*users.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, apperrors.Validation("user not found")
		}
		return nil, s.classify(err, apperrors.Validation("could not load user"), "[Service.Profile]")
	}
	return user.Sanitized(), nil
}

// loggedIn issues the session token and sanitizes the user. Stripping the
// password hash here is the post-condition every operation relies on.
func (s *Service) loggedIn(user *users.User) (*Result, error) {
	signed, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "[Service] issue session token")
	}
	return &Result{User: user.Sanitized(), Token: signed}, nil
}

// classify re-tags a collaborator failure for the client. Errors already
// carrying a kind (dependency failures from the store) pass through with
// context; anything else takes the fallback kind so no raw internal error
// reaches a client.
func (s *Service) classify(err error, fallback *apperrors.Error, where string) error {
	if apperrors.KindOf(err) != 0 {
		return errors.Wrap(err, where)
	}
	fallback.Err = err
	return fallback
}
