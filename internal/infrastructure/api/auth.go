package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type forgotResponse struct {
	ResetURL string `json:"reset_url,omitempty"`
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (a *AuthAPI) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	var user domain.User
	req := signupRequest{Email: input.Email, Password: input.Password, Role: input.Role}
	if err := a.c.postJSON(ctx, "/auth/signup", req, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login posts the OAuth2 password form. The email travels as username.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp loginResponse
	if err := a.c.postForm(ctx, "/auth/login", form, &resp, false); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := a.c.getJSON(ctx, "/auth/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// Forgot always reports neutrally whether the email exists; the dev backend
// additionally echoes the reset URL.
func (a *AuthAPI) Forgot(ctx context.Context, email string) (string, error) {
	raw, err := json.Marshal(forgotRequest{Email: email})
	if err != nil {
		return "", err
	}
	data, err := a.c.do(ctx, http.MethodPost, "/auth/forgot", nil, "application/json", bytes.NewReader(raw), false)
	if err != nil {
		return "", err
	}
	// The body may be empty or non-JSON; the reset URL is a dev convenience.
	var resp forgotResponse
	_ = json.Unmarshal(data, &resp)
	return resp.ResetURL, nil
}

func (a *AuthAPI) Reset(ctx context.Context, token, newPassword string) error {
	return a.c.postJSON(ctx, "/auth/reset", resetRequest{Token: token, NewPassword: newPassword}, nil, false)
}

func (a *AuthAPI) Health(ctx context.Context) error {
	return a.c.Health(ctx)
}
