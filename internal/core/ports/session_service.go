package ports

import (
	"context"
	"time"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// SessionClaims is the client-side, unverified view of the stored bearer
// token. Display only; the server remains the authority on validity.
type SessionClaims struct {
	Email     string
	Role      string
	ExpiresAt time.Time
}

// SessionService drives the credential-submission and session lifecycle:
// validate locally, call the remote endpoint, persist the credential, and
// expose presence to the screens.
type SessionService interface {
	// Login validates locally, exchanges credentials for a token, stores it,
	// and returns the authenticated user. The store is untouched on failure.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// Signup validates locally, registers the account, then chains a login.
	// When the chained login fails the created user is returned together
	// with domain.ErrAutoLoginFailed.
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)

	// Probe checks the stored session against GET /auth/me.
	Probe(ctx context.Context) (*domain.User, error)

	// Logout clears the stored credential.
	Logout() error

	LoggedIn() bool

	// PeekClaims decodes the stored token without verifying its signature.
	PeekClaims() (*SessionClaims, error)

	Forgot(ctx context.Context, email string) (resetURL string, err error)
	Reset(ctx context.Context, token, newPassword string) error

	// Health reports backend reachability for the pre-login screen.
	Health(ctx context.Context) error
}
