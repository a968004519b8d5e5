package domain

import "errors"

var (
	// ErrInvalidCredentials covers client-side validation failures that are
	// caught before any network call is made.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession means a protected operation was attempted with no stored
	// credential.
	ErrNoSession = errors.New("not logged in")

	// ErrSessionExpired means the server rejected the stored credential
	// (401). The local session has already been cleared when callers see
	// this; the only valid reaction is to show the logged-out view.
	ErrSessionExpired = errors.New("session expired, log in again")

	// ErrRequestTimeout is returned when a request is cancelled by the
	// client-side deadline before any response arrived.
	ErrRequestTimeout = errors.New("network timeout")

	// ErrAutoLoginFailed means signup succeeded but the chained login did
	// not. The account exists; the user must log in manually.
	ErrAutoLoginFailed = errors.New("account created but auto-login failed, log in manually")
)
