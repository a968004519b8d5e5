package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

func (m Model) updateDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Directory):
		m.screen = screenDirectory
		m.loading = true
		cmd := m.browseCmd()
		return m, cmd
	case key.Matches(msg, m.keys.Jobs):
		cmd := m.loadJobsCmd()
		m.loading = true
		return m, cmd
	case key.Matches(msg, m.keys.New):
		if m.user != nil && m.user.Role == domain.RoleProvider {
			m.startProviderForm()
		} else {
			m.startJobForm()
		}
		return m, textinput.Blink
	case key.Matches(msg, m.keys.TopPros):
		m.startForm(formTopPros, 0,
			formField{label: "Top pros: city", placeholder: "city", value: m.cityFilter},
			formField{label: "Top pros: service (optional)", placeholder: "plumbing, tutoring, ..."},
		)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.probeCmd()
	case key.Matches(msg, m.keys.Logout):
		if err := m.session.Logout(); err != nil {
			m.statusLine = err.Error()
			return m, nil
		}
		m.endSession("logged out")
		return m, nil
	}
	return m, nil
}

func (m Model) renderDashboard() string {
	lines := []string{headingStyle.Render("Home"), ""}

	if claims, err := m.session.PeekClaims(); err == nil && claims != nil {
		lines = append(lines, dimStyle.Render(fmt.Sprintf(
			"session: %s (%s), expires %s", claims.Email, claims.Role, claims.ExpiresAt.Format("2006-01-02 15:04"))))
		lines = append(lines, "")
	}

	if len(m.recs) > 0 {
		lines = append(lines, headingStyle.Render("Top pros"))
		for _, p := range m.recs {
			lines = append(lines, "  "+providerLine(p))
		}
	} else {
		lines = append(lines, dimStyle.Render("Press t to find the top pros in your city."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func providerLine(p domain.Provider) string {
	rating := "unrated"
	if p.Rating != nil {
		rating = fmt.Sprintf("%.1f★", *p.Rating)
	}
	return fmt.Sprintf("%-24s %-16s %-14s %s", p.Name, p.ServiceType, p.City, rating)
}

func (m Model) topProsCmd(city, service string) tea.Cmd {
	svc := m.directory
	return func() tea.Msg {
		providers, err := svc.TopPros(context.Background(), city, service)
		return recommendationsMsg{providers: providers, err: err}
	}
}
