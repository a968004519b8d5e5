package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

// filterDebounce matches the type-ahead delay on the directory filters:
// keystrokes reset the timer, only the final value hits the network.
const filterDebounce = 300 * time.Millisecond

func (m Model) updateDirectoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.abortNav()
		m.screen = screenDashboard
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.provSelected--
		m.clampProviderSelection()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.provSelected++
		m.clampProviderSelection()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if len(m.providers) == 0 {
			return m, nil
		}
		cmd := m.detailCmd(m.providers[m.provSelected].ID)
		m.loading = true
		return m, cmd
	case key.Matches(msg, m.keys.FilterCity):
		m.inputMode = inputFilterCity
		m.textInput.Placeholder = "city"
		m.textInput.SetValue(m.cityFilter)
		m.textInput.Focus()
		m.statusLine = "filter by city"
		return m, textinput.Blink
	case key.Matches(msg, m.keys.FilterSvc):
		m.inputMode = inputFilterService
		m.textInput.Placeholder = "service type"
		m.textInput.SetValue(m.serviceFilter)
		m.textInput.Focus()
		m.statusLine = "filter by service type"
		return m, textinput.Blink
	case key.Matches(msg, m.keys.ClearFilter):
		if m.cityFilter == "" && m.serviceFilter == "" {
			return m, nil
		}
		m.cityFilter = ""
		m.serviceFilter = ""
		m.statusLine = ""
		cmd := m.browseCmd()
		return m, cmd
	case key.Matches(msg, m.keys.New):
		m.startProviderForm()
		return m, textinput.Blink
	}
	return m, nil
}

// updateFilterMode feeds keystrokes into the focused filter input. Every
// change re-arms the debounce timer; the fetch fires only after the input
// has been quiet for the full interval.
func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Confirm) {
		m.inputMode = inputNone
		m.textInput.Blur()
		m.textInput.SetValue("")
		m.statusLine = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	value := m.textInput.Value()
	changed := false
	switch m.inputMode {
	case inputFilterCity:
		changed = value != m.cityFilter
		m.cityFilter = value
	case inputFilterService:
		changed = value != m.serviceFilter
		m.serviceFilter = value
	}
	if !changed {
		return m, cmd
	}
	timer := m.armFilterTimer()
	return m, tea.Batch(cmd, timer)
}

func (m *Model) armFilterTimer() tea.Cmd {
	m.filterSeq++
	seq := m.filterSeq
	return tea.Tick(filterDebounce, func(time.Time) tea.Msg {
		return filterTickMsg{seq: seq}
	})
}

// browseCmd cancels any in-flight directory fetch before starting a new one,
// so a superseded response can never overwrite fresher results.
func (m *Model) browseCmd() tea.Cmd {
	if m.browseCancel != nil {
		m.browseCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.browseCancel = cancel

	seq := m.filterSeq
	filter := ports.ProviderFilter{City: m.cityFilter, ServiceType: m.serviceFilter}
	svc := m.directory
	return func() tea.Msg {
		providers, err := svc.Browse(ctx, filter)
		return providersLoadedMsg{seq: seq, providers: providers, err: err}
	}
}

// detailCmd joins the same abort-on-supersede discipline as the browse: the
// previous navigation fetch is cancelled and a late reply carries a stale
// sequence number.
func (m *Model) detailCmd(id int64) tea.Cmd {
	ctx, seq := m.startNav()
	svc := m.directory
	return func() tea.Msg {
		detail, err := svc.Detail(ctx, id)
		return providerDetailMsg{seq: seq, detail: detail, err: err}
	}
}

func (m *Model) startProviderForm() {
	m.startForm(formProvider, 0,
		formField{label: "New listing: name", placeholder: "business or personal name"},
		formField{label: "New listing: service type", placeholder: "plumbing, tutoring, ..."},
		formField{label: "New listing: city", placeholder: "city"},
		formField{label: "New listing: rating (optional)", placeholder: "0-5, leave empty to start unrated"},
	)
}

func (m Model) createProviderCmd(name, serviceType, city string, rating *float64) tea.Cmd {
	svc := m.directory
	return func() tea.Msg {
		provider, err := svc.AddProvider(context.Background(), ports.CreateProviderInput{
			Name:        name,
			ServiceType: serviceType,
			City:        city,
			Rating:      rating,
		})
		return providerCreatedMsg{provider: provider, err: err}
	}
}

func (m Model) addReviewCmd(providerID int64, stars int, comment string) tea.Cmd {
	svc := m.directory
	return func() tea.Msg {
		review, err := svc.SubmitReview(context.Background(), providerID, ports.ReviewInput{
			Stars:   stars,
			Comment: comment,
		})
		return reviewAddedMsg{review: review, err: err}
	}
}

func (m Model) updateProviderDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.abortNav()
		m.screen = screenDirectory
		m.detail = nil
		return m, nil
	case key.Matches(msg, m.keys.Review):
		if m.detail == nil {
			return m, nil
		}
		m.startForm(formReview, m.detail.Provider.ID,
			formField{label: "Review: stars", placeholder: "1-5"},
			formField{label: "Review: comment (optional)", placeholder: "how did it go?"},
		)
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) renderDirectory() string {
	lines := []string{headingStyle.Render("Providers")}

	filters := ""
	if m.cityFilter != "" {
		filters += " city:" + m.cityFilter
	}
	if m.serviceFilter != "" {
		filters += " service:" + m.serviceFilter
	}
	if filters != "" {
		lines = append(lines, dimStyle.Render("filters:"+filters))
	}
	lines = append(lines, "")

	if len(m.providers) == 0 {
		lines = append(lines, dimStyle.Render("No providers match."))
	}
	for i, p := range m.providers {
		line := "  " + providerLine(p)
		if i == m.provSelected {
			line = selectedStyle.Render("> " + providerLine(p))
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderProviderDetail() string {
	if m.detail == nil {
		return dimStyle.Render("No provider selected.")
	}
	p := m.detail.Provider
	lines := []string{
		headingStyle.Render(p.Name),
		dimStyle.Render(fmt.Sprintf("%s in %s", p.ServiceType, p.City)),
	}
	if p.Rating != nil {
		lines = append(lines, fmt.Sprintf("rating: %.1f★", *p.Rating))
	}
	lines = append(lines, "", headingStyle.Render("Reviews"))
	if len(m.detail.Reviews) == 0 {
		lines = append(lines, dimStyle.Render("No reviews yet."))
	}
	for _, r := range m.detail.Reviews {
		lines = append(lines, fmt.Sprintf("  %d★ %s", r.Stars, r.Comment))
		lines = append(lines, dimStyle.Render("     "+r.CreatedAt.Format("2006-01-02")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
