package ports

import (
	"context"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// SignupInput carries the registration payload for POST /auth/signup.
type SignupInput struct {
	Email    string
	Password string
	Role     string
}

// AuthGateway wraps the remote authentication endpoints.
type AuthGateway interface {
	// Signup creates an account and returns the created user. JSON body.
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)

	// Login exchanges credentials for a bearer token. The backend expects an
	// OAuth2 password form (form-encoded username/password), so the email
	// travels under the username key.
	Login(ctx context.Context, email, password string) (token string, err error)

	// Me probes the stored session and returns the current user.
	Me(ctx context.Context) (*domain.User, error)

	// Forgot requests a password-reset email. The dev backend echoes the
	// reset URL in the response; resetURL is empty in production.
	Forgot(ctx context.Context, email string) (resetURL string, err error)

	// Reset completes the recovery flow with the token from the reset URL.
	Reset(ctx context.Context, token, newPassword string) error

	// Health pings the backend without credentials.
	Health(ctx context.Context) error
}
