package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || len(req.Password) < 6 || !domain.ValidRole(req.Role) {
		return c.String(http.StatusUnprocessableEntity, "invalid signup payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		return c.String(http.StatusBadRequest, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return c.String(http.StatusInternalServerError, "hash failure")
	}
	rec := &userRecord{ID: s.id(), Email: req.Email, PasswordHash: string(hash), Role: req.Role}
	s.users[req.Email] = rec

	return c.JSON(http.StatusCreated, domain.User{ID: rec.ID, Email: rec.Email, Role: rec.Role})
}

// handleLogin accepts the OAuth2 password form: username + password.
func (s *Server) handleLogin(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")

	s.mu.Lock()
	rec, ok := s.users[email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return c.String(http.StatusUnauthorized, "Incorrect email or password")
	}

	token, err := s.issueToken(rec, time.Now().Add(tokenTTL))
	if err != nil {
		return c.String(http.StatusInternalServerError, "token failure")
	}
	return c.JSON(http.StatusOK, map[string]string{"access_token": token})
}

func (s *Server) handleMe(c echo.Context) error {
	rec, err := s.authenticate(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.User{ID: rec.ID, Email: rec.Email, Role: rec.Role})
}

type forgotRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleForgot(c echo.Context) error {
	var req forgotRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	resp := map[string]string{"message": "If that email exists, we sent a reset link."}
	if _, ok := s.users[req.Email]; ok {
		token := uuid.NewString()
		s.resetTokens[token] = req.Email
		resp["reset_url"] = "/auth/reset?t=" + token
	}
	return c.JSON(http.StatusOK, resp)
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleReset(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}
	if len(req.NewPassword) < 6 {
		return c.String(http.StatusUnprocessableEntity, "password too short")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.resetTokens[req.Token]
	if !ok {
		return c.String(http.StatusBadRequest, "Invalid or expired token")
	}
	delete(s.resetTokens, req.Token)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	if err != nil {
		return c.String(http.StatusInternalServerError, "hash failure")
	}
	s.users[email].PasswordHash = string(hash)
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated."})
}

func (s *Server) issueToken(rec *userRecord, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  rec.Email,
		"role": rec.Role,
		"exp":  expires.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.JWTSecret))
}

// Token mints a valid bearer token for a seeded user.
func (s *Server) Token(email string) string {
	s.mu.Lock()
	rec, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("stubapi: no such user %q", email))
	}
	token, err := s.issueToken(rec, time.Now().Add(tokenTTL))
	if err != nil {
		panic(err)
	}
	return token
}

// ExpiredToken mints a token the auth middleware will reject.
func (s *Server) ExpiredToken(email string) string {
	s.mu.Lock()
	rec, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("stubapi: no such user %q", email))
	}
	token, err := s.issueToken(rec, time.Now().Add(-time.Minute))
	if err != nil {
		panic(err)
	}
	return token
}

// errUnauthorized signals that authenticate already wrote the 401 response.
var errUnauthorized = errors.New("unauthorized")

// authenticate validates the bearer token and resolves the caller. On
// failure it writes the 401 itself and returns errUnauthorized; handlers
// must return the error unchanged.
func (s *Server) authenticate(c echo.Context) (*userRecord, error) {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		_ = c.String(http.StatusUnauthorized, "Not authenticated")
		return nil, errUnauthorized
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.JWTSecret), nil
	})
	if err != nil || !tkn.Valid {
		_ = c.String(http.StatusUnauthorized, "Could not validate credentials")
		return nil, errUnauthorized
	}

	email, _ := claims["sub"].(string)
	s.mu.Lock()
	rec, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		_ = c.String(http.StatusUnauthorized, "Could not validate credentials")
		return nil, errUnauthorized
	}
	return rec, nil
}
