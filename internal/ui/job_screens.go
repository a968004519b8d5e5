package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

func (m Model) updateJobsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.abortNav()
		m.screen = screenDashboard
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.jobSelected--
		m.clampJobSelection()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.jobSelected++
		m.clampJobSelection()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if len(m.jobList) == 0 {
			return m, nil
		}
		cmd := m.jobDetailCmd(m.jobList[m.jobSelected].ID)
		m.loading = true
		return m, cmd
	case key.Matches(msg, m.keys.New):
		m.startJobForm()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.loadJobsCmd()
		m.loading = true
		return m, cmd
	}
	return m, nil
}

func (m Model) updateJobDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.abortNav()
		m.screen = screenJobs
		m.jobDetail = nil
		return m, nil
	case key.Matches(msg, m.keys.Plan):
		if m.jobDetail == nil {
			return m, nil
		}
		m.startForm(formPlan, m.jobDetail.Job.ID,
			formField{label: "Plan item", placeholder: "what needs doing?"},
		)
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) startJobForm() {
	m.startForm(formJob, 0,
		formField{label: "New job: title", placeholder: "short summary"},
		formField{label: "New job: service type", placeholder: "plumbing, tutoring, ..."},
		formField{label: "New job: city", placeholder: "city"},
		formField{label: "New job: description (optional)", placeholder: "details for the pro"},
		formField{label: "New job: photos (optional)", placeholder: "comma-separated file paths, up to 6"},
	)
}

func (m *Model) loadJobsCmd() tea.Cmd {
	ctx, seq := m.startNav()
	svc := m.jobs
	return func() tea.Msg {
		jobs, err := svc.Mine(ctx)
		return jobsLoadedMsg{seq: seq, jobs: jobs, err: err}
	}
}

func (m *Model) jobDetailCmd(id int64) tea.Cmd {
	ctx, seq := m.startNav()
	svc := m.jobs
	return func() tea.Msg {
		detail, err := svc.Detail(ctx, id)
		return jobDetailMsg{seq: seq, detail: detail, err: err}
	}
}

// createJobCmd opens the photo files inside the command so a slow disk never
// stalls the update loop. Unreadable paths are skipped, same as failed
// uploads.
func (m Model) createJobCmd(title, serviceType, city, description string, photoPaths []string) tea.Cmd {
	svc := m.jobs
	return func() tea.Msg {
		var photos []ports.PhotoFile
		var closers []io.Closer
		var unreadable []string
		for _, p := range photoPaths {
			f, err := os.Open(p)
			if err != nil {
				unreadable = append(unreadable, filepath.Base(p))
				continue
			}
			closers = append(closers, f)
			photos = append(photos, ports.PhotoFile{Name: filepath.Base(p), Content: f})
		}
		defer func() {
			for _, c := range closers {
				_ = c.Close()
			}
		}()

		job, skipped, err := svc.Create(context.Background(), ports.CreateJobInput{
			Title:       title,
			ServiceType: serviceType,
			City:        city,
			Description: description,
		}, photos)
		return jobCreatedMsg{job: job, skipped: append(unreadable, skipped...), err: err}
	}
}

func (m Model) addPlanCmd(jobID int64, text string) tea.Cmd {
	svc := m.jobs
	return func() tea.Msg {
		item, err := svc.AddPlanItem(context.Background(), jobID, text)
		return planAddedMsg{item: item, err: err}
	}
}

func (m Model) renderJobs() string {
	lines := []string{headingStyle.Render("My jobs"), ""}
	if len(m.jobList) == 0 {
		lines = append(lines, dimStyle.Render("No jobs yet. Press n to post one."))
	}
	for i, j := range m.jobList {
		line := "  " + jobLine(j)
		if i == m.jobSelected {
			line = selectedStyle.Render("> " + jobLine(j))
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func jobLine(j domain.Job) string {
	return fmt.Sprintf("#%-4d %-28s %-16s %-12s %s", j.ID, j.Title, j.ServiceType, j.City, j.Status)
}

func (m Model) renderJobDetail() string {
	if m.jobDetail == nil {
		return dimStyle.Render("No job selected.")
	}
	j := m.jobDetail.Job
	lines := []string{
		headingStyle.Render(fmt.Sprintf("#%d %s", j.ID, j.Title)),
		dimStyle.Render(fmt.Sprintf("%s in %s, %s", j.ServiceType, j.City, j.Status)),
	}
	if j.Description != "" {
		lines = append(lines, "", j.Description)
	}
	if len(j.Photos) > 0 {
		lines = append(lines, "", headingStyle.Render("Photos"))
		for _, url := range j.Photos {
			lines = append(lines, dimStyle.Render("  "+url))
		}
	}
	lines = append(lines, "", headingStyle.Render("Plan"))
	if len(m.jobDetail.Plans) == 0 {
		lines = append(lines, dimStyle.Render("Nothing planned yet. Press a to add an item."))
	}
	for _, item := range m.jobDetail.Plans {
		check := "[ ]"
		if item.Done {
			check = "[x]"
		}
		lines = append(lines, fmt.Sprintf("  %s %s", check, item.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
