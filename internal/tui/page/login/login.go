// Package login is the sign-in form.
package login

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/weightrack/internal/tui/components/textfield"
	"github.com/garrettladley/weightrack/internal/tui/page/splash"
	"github.com/garrettladley/weightrack/internal/tui/theme"
)

const fieldWidth = 32

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

type Action uint

const (
	ActionNone Action = iota
	ActionSubmit
	ActionSignUp
)

type State struct {
	Fields     [fieldCount]textfield.Model
	Focus      int
	Submitting bool
	Alert      string
}

func New() State {
	email := textfield.New("Email")
	email.Placeholder = "you@example.com"
	email.Width = fieldWidth

	password := textfield.New("Password")
	password.Masked = true
	password.Width = fieldWidth

	s := State{Fields: [fieldCount]textfield.Model{email, password}}
	s.Fields[fieldEmail] = s.Fields[fieldEmail].Focus()
	return s
}

func (s State) Email() string    { return s.Fields[fieldEmail].Value() }
func (s State) Password() string { return s.Fields[fieldPassword].Value() }

// Update handles a key press. Input is ignored while a sign-in is in flight.
func (s State) Update(msg tea.KeyPressMsg) (State, Action) {
	if s.Submitting {
		return s, ActionNone
	}

	switch msg.String() {
	case "ctrl+n":
		return s, ActionSignUp
	case "tab", "down":
		return s.focus((s.Focus + 1) % fieldCount), ActionNone
	case "shift+tab", "up":
		return s.focus((s.Focus + fieldCount - 1) % fieldCount), ActionNone
	case "enter":
		if s.Focus < fieldCount-1 {
			return s.focus(s.Focus + 1), ActionNone
		}
		s.Alert = ""
		s.Submitting = true
		return s, ActionSubmit
	}

	var changed bool
	s.Fields[s.Focus], changed = s.Fields[s.Focus].Update(msg)
	if changed {
		s.Alert = ""
	}
	return s, ActionNone
}

func (s State) focus(i int) State {
	for j := range s.Fields {
		s.Fields[j] = s.Fields[j].Blur()
	}
	s.Fields[i] = s.Fields[i].Focus()
	s.Focus = i
	return s
}

// Failed ends a submission with an alert.
func (s State) Failed(alert string) State {
	s.Submitting = false
	s.Alert = alert
	return s
}

func View(t theme.Theme, state State, width, height int) string {
	button := t.Button().Render("Sign In")
	if state.Submitting {
		button = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("Signing in...")
	}

	parts := []string{
		splash.LogoView(t),
		"",
		t.Title().Render("Welcome back"),
		"",
		state.Fields[fieldEmail].LabeledView(t),
		state.Fields[fieldPassword].LabeledView(t),
		"",
		button,
	}
	if state.Alert != "" {
		parts = append(parts, "", t.Error().Render(state.Alert))
	}
	parts = append(parts, "", t.Muted().Render("enter: next/submit · tab: switch field · ctrl+n: create account · ctrl+c: quit"))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...),
	)
}
