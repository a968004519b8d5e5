package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formLogin formKind = iota
	formSignup
	formForgot
	formReset
	formReview
	formProvider
	formJob
	formPlan
	formTopPros
)

type formField struct {
	label       string
	placeholder string
	value       string
	secret      bool
}

// form is a stepped single-input flow: one field at a time, enter advances,
// the last enter submits.
type form struct {
	kind     formKind
	step     int
	fields   []formField
	targetID int64
}

func (m *Model) startForm(kind formKind, targetID int64, fields ...formField) {
	m.form = &form{kind: kind, fields: fields, targetID: targetID}
	m.loadFormStep()
	m.textInput.Focus()
}

func (m *Model) loadFormStep() {
	f := m.form
	if f == nil {
		return
	}
	field := f.fields[f.step]
	m.textInput.Placeholder = field.placeholder
	m.textInput.SetValue(field.value)
	if field.secret {
		m.textInput.EchoMode = textinput.EchoPassword
	} else {
		m.textInput.EchoMode = textinput.EchoNormal
	}
	m.statusLine = fmt.Sprintf("%s (%d/%d)", field.label, f.step+1, len(f.fields))
}

// reopenForm restores the last submitted form on its final step so the
// rejected input can be corrected. The status line keeps the server's
// error text.
func (m *Model) reopenForm() tea.Cmd {
	if m.lastForm == nil {
		return nil
	}
	m.form = m.lastForm
	m.lastForm = nil
	field := m.form.fields[m.form.step]
	m.textInput.Placeholder = field.placeholder
	m.textInput.SetValue(field.value)
	if field.secret {
		m.textInput.EchoMode = textinput.EchoPassword
	} else {
		m.textInput.EchoMode = textinput.EchoNormal
	}
	m.textInput.Focus()
	return textinput.Blink
}

func (m *Model) closeForm() {
	m.form = nil
	m.textInput.Blur()
	m.textInput.EchoMode = textinput.EchoNormal
	m.textInput.SetValue("")
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		m.statusLine = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.form.fields[m.form.step].value = strings.TrimSpace(m.textInput.Value())
		if m.form.step < len(m.form.fields)-1 {
			m.form.step++
			m.loadFormStep()
			return m, textinput.Blink
		}
		cmd, err := m.submitFormCmd()
		if err != nil {
			// Stay on the form so the input can be corrected.
			m.statusLine = err.Error()
			m.loadFormStep()
			return m, textinput.Blink
		}
		// Keep the submitted values so a server rejection reopens the form
		// instead of forcing a full retype.
		m.lastForm = m.form
		m.closeForm()
		m.loading = true
		return m, cmd
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) submitFormCmd() (tea.Cmd, error) {
	f := m.form
	switch f.kind {
	case formLogin:
		return m.loginCmd(f.fields[0].value, f.fields[1].value), nil
	case formSignup:
		return m.signupCmd(f.fields[0].value, f.fields[1].value, f.fields[2].value), nil
	case formForgot:
		return m.forgotCmd(f.fields[0].value), nil
	case formReset:
		return m.resetCmd(f.fields[0].value, f.fields[1].value), nil
	case formReview:
		stars, err := strconv.Atoi(f.fields[0].value)
		if err != nil {
			return nil, fmt.Errorf("stars must be a number between 1 and 5")
		}
		return m.addReviewCmd(f.targetID, stars, f.fields[1].value), nil
	case formProvider:
		var rating *float64
		if raw := f.fields[3].value; raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("rating must be a number between 0 and 5")
			}
			rating = &v
		}
		return m.createProviderCmd(f.fields[0].value, f.fields[1].value, f.fields[2].value, rating), nil
	case formJob:
		return m.createJobCmd(f.fields[0].value, f.fields[1].value, f.fields[2].value, f.fields[3].value, splitPaths(f.fields[4].value)), nil
	case formPlan:
		return m.addPlanCmd(f.targetID, f.fields[0].value), nil
	case formTopPros:
		return m.topProsCmd(f.fields[0].value, f.fields[1].value), nil
	}
	return nil, fmt.Errorf("unknown form")
}

func splitPaths(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
