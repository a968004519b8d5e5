package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

// SessionService implements the credential-submission and session lifecycle.
// All form validation happens here, before any network call.
type SessionService struct {
	auth     ports.AuthGateway
	store    ports.TokenStore
	validate *validator.Validate
	log      zerolog.Logger
}

func NewSessionService(auth ports.AuthGateway, store ports.TokenStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		auth:     auth,
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=client provider"`
}

type forgotForm struct {
	Email string `validate:"required,email"`
}

type resetForm struct {
	Token       string `validate:"required"`
	NewPassword string `validate:"required,min=6"`
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Struct(loginForm{Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, humanize(err))
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(token); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("role", user.Role).Msg("logged in")
	return user, nil
}

func (s *SessionService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	form := signupForm{Email: input.Email, Password: input.Password, Role: input.Role}
	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, humanize(err))
	}

	user, err := s.auth.Signup(ctx, input)
	if err != nil {
		return nil, err
	}

	// Auto-login so the new account lands on its home screen immediately.
	// A failure here must read differently from a signup failure: the
	// account exists.
	token, err := s.auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		s.log.Warn().Err(err).Msg("auto-login after signup failed")
		return user, fmt.Errorf("%w: %v", domain.ErrAutoLoginFailed, err)
	}
	if err := s.store.Set(token); err != nil {
		return user, fmt.Errorf("%w: %v", domain.ErrAutoLoginFailed, err)
	}

	s.log.Info().Str("role", user.Role).Msg("account created")
	return user, nil
}

func (s *SessionService) Probe(ctx context.Context) (*domain.User, error) {
	if !s.LoggedIn() {
		return nil, domain.ErrNoSession
	}
	return s.auth.Me(ctx)
}

func (s *SessionService) Logout() error {
	s.log.Info().Msg("logged out")
	return s.store.Clear()
}

func (s *SessionService) LoggedIn() bool {
	_, ok := s.store.Get()
	return ok
}

// PeekClaims decodes the stored bearer token without verifying its
// signature. Display only; staleness is discovered reactively via 401s.
func (s *SessionService) PeekClaims() (*ports.SessionClaims, error) {
	token, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	out := &ports.SessionClaims{}
	if v, ok := claims["sub"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	} else {
		out.ExpiresAt = time.Time{}
	}
	return out, nil
}

func (s *SessionService) Forgot(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Struct(forgotForm{Email: email}); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, humanize(err))
	}
	return s.auth.Forgot(ctx, email)
}

func (s *SessionService) Health(ctx context.Context) error {
	return s.auth.Health(ctx)
}

func (s *SessionService) Reset(ctx context.Context, token, newPassword string) error {
	if err := s.validate.Struct(resetForm{Token: token, NewPassword: newPassword}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, humanize(err))
	}
	return s.auth.Reset(ctx, token, newPassword)
}
