package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

func (m Model) updateLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Login):
		m.startForm(formLogin, 0,
			formField{label: "Log in: email", placeholder: "you@example.com"},
			formField{label: "Log in: password", placeholder: "password", secret: true},
		)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Signup):
		m.startForm(formSignup, 0,
			formField{label: "Sign up: email", placeholder: "you@example.com"},
			formField{label: "Sign up: password", placeholder: "at least 6 characters", secret: true},
			formField{label: "Sign up: role", placeholder: "client or provider", value: "client"},
		)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Forgot):
		m.startForm(formForgot, 0,
			formField{label: "Forgot password: email", placeholder: "you@example.com"},
		)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reset):
		m.startForm(formReset, 0,
			formField{label: "Reset password: token", placeholder: "token from the reset link"},
			formField{label: "Reset password: new password", placeholder: "at least 6 characters", secret: true},
		)
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) renderLogin() string {
	lines := []string{
		headingStyle.Render("Welcome"),
		"",
		"Find trusted local pros, or offer your services.",
		"",
		dimStyle.Render("Log in or create an account to continue."),
	}
	if m.backendStatus != "" {
		lines = append(lines, "", dimStyle.Render(m.backendStatus))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	svc := m.session
	return func() tea.Msg {
		user, err := svc.Login(context.Background(), email, password)
		return loggedInMsg{user: user, err: err}
	}
}

func (m Model) signupCmd(email, password, role string) tea.Cmd {
	svc := m.session
	return func() tea.Msg {
		user, err := svc.Signup(context.Background(), ports.SignupInput{
			Email:    email,
			Password: password,
			Role:     role,
		})
		return signedUpMsg{user: user, err: err}
	}
}

func (m Model) forgotCmd(email string) tea.Cmd {
	svc := m.session
	return func() tea.Msg {
		resetURL, err := svc.Forgot(context.Background(), email)
		return forgotSentMsg{resetURL: resetURL, err: err}
	}
}

func (m Model) resetCmd(token, newPassword string) tea.Cmd {
	svc := m.session
	return func() tea.Msg {
		if err := svc.Reset(context.Background(), token, newPassword); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{status: "password updated, log in with the new one"}
	}
}
