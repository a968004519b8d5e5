// Package ui is the terminal frontend. One Model owns all screens; every
// remote call runs inside a tea.Cmd and reports back through a typed message,
// so the update loop never blocks on the network.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

type screen int

const (
	screenLogin screen = iota
	screenDashboard
	screenDirectory
	screenProviderDetail
	screenJobs
	screenJobDetail
)

type inputMode int

const (
	inputNone inputMode = iota
	inputFilterCity
	inputFilterService
)

// SessionEndedMsg is injected from outside the update loop when the stored
// credential disappears, e.g. after a server-side rejection.
type SessionEndedMsg struct{}

type healthMsg struct{ err error }

type sessionProbedMsg struct {
	user *domain.User
	err  error
}

type loggedInMsg struct {
	user *domain.User
	err  error
}

type signedUpMsg struct {
	user *domain.User
	err  error
}

type forgotSentMsg struct {
	resetURL string
	err      error
}

type opResultMsg struct {
	status string
	err    error
}

type filterTickMsg struct{ seq int }

type providersLoadedMsg struct {
	seq       int
	providers []domain.Provider
	err       error
}

type providerDetailMsg struct {
	seq    int
	detail *ports.ProviderDetail
	err    error
}

type providerCreatedMsg struct {
	provider *domain.Provider
	err      error
}

type reviewAddedMsg struct {
	review *domain.Review
	err    error
}

type recommendationsMsg struct {
	providers []domain.Provider
	err       error
}

type jobsLoadedMsg struct {
	seq  int
	jobs []domain.Job
	err  error
}

type jobDetailMsg struct {
	seq    int
	detail *ports.JobDetail
	err    error
}

type jobCreatedMsg struct {
	job     *domain.Job
	skipped []string
	err     error
}

type planAddedMsg struct {
	item *domain.PlanItem
	err  error
}

type Model struct {
	session   ports.SessionService
	directory ports.DirectoryService
	jobs      ports.JobService
	log       zerolog.Logger

	screen screen
	user   *domain.User

	providers     []domain.Provider
	provSelected  int
	cityFilter    string
	serviceFilter string
	filterSeq     int
	browseCancel  context.CancelFunc
	detail        *ports.ProviderDetail

	navSeq    int
	navCancel context.CancelFunc

	jobList     []domain.Job
	jobSelected int
	jobDetail   *ports.JobDetail

	recs []domain.Provider

	form      *form
	lastForm  *form
	inputMode inputMode
	textInput textinput.Model

	statusLine    string
	backendStatus string
	loading       bool

	width  int
	height int

	keys keyMap
}

func NewModel(session ports.SessionService, directory ports.DirectoryService, jobs ports.JobService, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = "> "

	return Model{
		session:   session,
		directory: directory,
		jobs:      jobs,
		log:       log,
		screen:    screenLogin,
		textInput: ti,
		keys:      newKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.session.LoggedIn() {
		return m.probeCmd()
	}
	return m.healthCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionEndedMsg:
		if m.user != nil {
			m.endSession(domain.ErrSessionExpired.Error())
		}
		return m, nil

	case healthMsg:
		if msg.err != nil {
			m.backendStatus = "backend unreachable: " + msg.err.Error()
		} else {
			m.backendStatus = "backend: ok"
		}
		return m, nil

	case sessionProbedMsg:
		m.loading = false
		if msg.err != nil {
			if !m.routeSessionErr(msg.err) {
				m.statusLine = msg.err.Error()
				m.screen = screenLogin
			}
			return m, nil
		}
		m.user = msg.user
		m.screen = screenDashboard
		m.statusLine = ""
		return m, nil

	case loggedInMsg:
		m.loading = false
		if msg.err != nil {
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		m.statusLine = fmt.Sprintf("logged in as %s", msg.user.Email)
		cmd := m.roleLanding(msg.user)
		return m, cmd

	case signedUpMsg:
		m.loading = false
		if msg.err != nil {
			// The account may exist even when the chained login failed.
			m.statusLine = msg.err.Error()
			if errors.Is(msg.err, domain.ErrAutoLoginFailed) {
				m.lastForm = nil
				m.screen = screenLogin
				return m, nil
			}
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		m.statusLine = fmt.Sprintf("welcome, %s", msg.user.Email)
		cmd := m.roleLanding(msg.user)
		return m, cmd

	case forgotSentMsg:
		m.loading = false
		if msg.err != nil {
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		m.statusLine = "if that email exists, a reset link was sent"
		if msg.resetURL != "" {
			m.statusLine = "reset link: " + msg.resetURL
		}
		return m, nil

	case opResultMsg:
		m.loading = false
		if msg.err != nil {
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		m.statusLine = msg.status
		return m, nil

	case filterTickMsg:
		if msg.seq != m.filterSeq {
			return m, nil
		}
		cmd := m.browseCmd()
		return m, cmd

	case providersLoadedMsg:
		if msg.seq != m.filterSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			return m, nil
		}
		m.providers = msg.providers
		m.clampProviderSelection()
		return m, nil

	case providerDetailMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			return m, nil
		}
		m.detail = msg.detail
		m.screen = screenProviderDetail
		m.statusLine = ""
		return m, nil

	case providerCreatedMsg:
		m.loading = false
		if msg.err != nil {
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		// Append the server-canonical record; no reload, no synthesized IDs.
		m.providers = append(m.providers, *msg.provider)
		m.screen = screenDirectory
		m.statusLine = fmt.Sprintf("listing #%d created", msg.provider.ID)
		return m, nil

	case reviewAddedMsg:
		m.loading = false
		if msg.err != nil {
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		if m.detail != nil {
			m.detail.Reviews = append([]domain.Review{*msg.review}, m.detail.Reviews...)
		}
		m.statusLine = "review submitted"
		return m, nil

	case recommendationsMsg:
		m.loading = false
		if msg.err != nil {
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		m.recs = msg.providers
		m.statusLine = ""
		return m, nil

	case jobsLoadedMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			return m, nil
		}
		m.jobList = msg.jobs
		m.clampJobSelection()
		m.screen = screenJobs
		return m, nil

	case jobDetailMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			return m, nil
		}
		m.jobDetail = msg.detail
		m.screen = screenJobDetail
		m.statusLine = ""
		return m, nil

	case jobCreatedMsg:
		m.loading = false
		if msg.err != nil {
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		m.jobList = append(m.jobList, *msg.job)
		m.screen = screenJobs
		if len(msg.skipped) > 0 {
			m.statusLine = fmt.Sprintf("job #%d created, %d photo(s) skipped", msg.job.ID, len(msg.skipped))
		} else {
			m.statusLine = fmt.Sprintf("job #%d created", msg.job.ID)
		}
		return m, nil

	case planAddedMsg:
		m.loading = false
		if msg.err != nil {
			if m.routeSessionErr(msg.err) {
				return m, nil
			}
			m.statusLine = msg.err.Error()
			cmd := m.reopenForm()
			return m, cmd
		}
		m.lastForm = nil
		if m.jobDetail != nil {
			m.jobDetail.Plans = append(m.jobDetail.Plans, *msg.item)
		}
		m.statusLine = "plan item added"
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateFormMode(msg)
		}
		if m.inputMode != inputNone {
			return m.updateFilterMode(msg)
		}
		return m.updateKeys(msg)
	}

	if m.form != nil || m.inputMode != inputNone {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case screenLogin:
		return m.updateLoginKeys(msg)
	case screenDashboard:
		return m.updateDashboardKeys(msg)
	case screenDirectory:
		return m.updateDirectoryKeys(msg)
	case screenProviderDetail:
		return m.updateProviderDetailKeys(msg)
	case screenJobs:
		return m.updateJobsKeys(msg)
	case screenJobDetail:
		return m.updateJobDetailKeys(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.screen {
	case screenLogin:
		body = m.renderLogin()
	case screenDashboard:
		body = m.renderDashboard()
	case screenDirectory:
		body = m.renderDirectory()
	case screenProviderDetail:
		body = m.renderProviderDetail()
	case screenJobs:
		body = m.renderJobs()
	case screenJobDetail:
		body = m.renderJobDetail()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
	return lipgloss.NewStyle().Padding(0, 1).Render(content)
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("PairPro")
	who := "not logged in"
	if m.user != nil {
		who = fmt.Sprintf("%s (%s)", m.user.Email, m.user.Role)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", metaStyle.Render(who))
}

func (m Model) renderFooter() string {
	lines := []string{}
	if m.loading {
		lines = append(lines, statusStyle.Render("working..."))
	} else if m.statusLine != "" {
		lines = append(lines, statusStyle.Render(m.statusLine))
	}
	lines = append(lines, hintStyle.Render(m.shortcuts()))
	if m.form != nil || m.inputMode != inputNone {
		lines = append(lines, inputStyle.Render(m.textInput.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) shortcuts() string {
	if m.form != nil {
		return "enter:next/save esc:cancel"
	}
	if m.inputMode != inputNone {
		return "enter:apply esc:done"
	}
	switch m.screen {
	case screenLogin:
		return "l:log in s:sign up f:forgot t:reset q:quit"
	case screenDashboard:
		return "p:providers J:my jobs n:new t:top pros R:refresh ctrl+l:log out q:quit"
	case screenDirectory:
		return "enter:open c:city s:service x:clear n:new listing esc:home q:quit"
	case screenProviderDetail:
		return "r:review esc:back q:quit"
	case screenJobs:
		return "enter:open n:new job R:refresh esc:home q:quit"
	case screenJobDetail:
		return "a:add plan item esc:back q:quit"
	}
	return "q:quit"
}

// routeSessionErr redirects to the login screen when the backend rejected
// the stored credential. The store is already cleared by the fetch layer.
func (m *Model) routeSessionErr(err error) bool {
	if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrNoSession) {
		m.endSession(err.Error())
		return true
	}
	return false
}

func (m *Model) endSession(status string) {
	m.abortNav()
	m.closeForm()
	m.lastForm = nil
	m.inputMode = inputNone
	m.user = nil
	m.recs = nil
	m.jobList = nil
	m.jobDetail = nil
	m.screen = screenLogin
	m.statusLine = status
}

// roleLanding sends each role to its home after a successful credential
// submission: providers get the listing setup form on top of the dashboard,
// clients get the dashboard itself.
func (m *Model) roleLanding(user *domain.User) tea.Cmd {
	m.user = user
	m.screen = screenDashboard
	if user.Role == domain.RoleProvider {
		m.startProviderForm()
		return textinput.Blink
	}
	return nil
}

// abortNav cancels the in-flight screen-changing fetch and invalidates its
// sequence number so a late reply cannot navigate.
func (m *Model) abortNav() {
	if m.navCancel != nil {
		m.navCancel()
		m.navCancel = nil
	}
	m.navSeq++
	m.loading = false
}

func (m *Model) startNav() (context.Context, int) {
	m.abortNav()
	ctx, cancel := context.WithCancel(context.Background())
	m.navCancel = cancel
	return ctx, m.navSeq
}

func (m *Model) clampProviderSelection() {
	if len(m.providers) == 0 {
		m.provSelected = 0
		return
	}
	if m.provSelected < 0 {
		m.provSelected = 0
	}
	if m.provSelected >= len(m.providers) {
		m.provSelected = len(m.providers) - 1
	}
}

func (m *Model) clampJobSelection() {
	if len(m.jobList) == 0 {
		m.jobSelected = 0
		return
	}
	if m.jobSelected < 0 {
		m.jobSelected = 0
	}
	if m.jobSelected >= len(m.jobList) {
		m.jobSelected = len(m.jobList) - 1
	}
}

func (m Model) healthCmd() tea.Cmd {
	svc := m.session
	return func() tea.Msg {
		return healthMsg{err: svc.Health(context.Background())}
	}
}

func (m Model) probeCmd() tea.Cmd {
	svc := m.session
	return func() tea.Msg {
		user, err := svc.Probe(context.Background())
		return sessionProbedMsg{user: user, err: err}
	}
}
