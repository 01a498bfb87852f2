// Package signup is the account creation form.
package signup

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/tui/components/textfield"
	"github.com/garrettladley/weightrack/internal/tui/page/splash"
	"github.com/garrettladley/weightrack/internal/tui/theme"
)

const fieldWidth = 32

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

type Action uint

const (
	ActionNone Action = iota
	ActionSubmit
	ActionSignIn
)

type State struct {
	Fields     [fieldCount]textfield.Model
	Focus      int
	Submitting bool
	Alert      string
}

func New() State {
	name := textfield.New("Name")
	name.Width = fieldWidth

	email := textfield.New("Email")
	email.Placeholder = "you@example.com"
	email.Width = fieldWidth

	password := textfield.New("Password")
	password.Masked = true
	password.Width = fieldWidth

	confirm := textfield.New("Confirm Password")
	confirm.Masked = true
	confirm.Width = fieldWidth

	s := State{Fields: [fieldCount]textfield.Model{name, email, password, confirm}}
	s.Fields[fieldName] = s.Fields[fieldName].Focus()
	return s
}

func (s State) Name() string     { return s.Fields[fieldName].Value() }
func (s State) Email() string    { return s.Fields[fieldEmail].Value() }
func (s State) Password() string { return s.Fields[fieldPassword].Value() }

// Update handles a key press. Mismatched passwords are reported without
// submitting.
func (s State) Update(msg tea.KeyPressMsg) (State, Action) {
	if s.Submitting {
		return s, ActionNone
	}

	switch msg.String() {
	case "ctrl+n", "esc":
		return s, ActionSignIn
	case "tab", "down":
		return s.focus((s.Focus + 1) % fieldCount), ActionNone
	case "shift+tab", "up":
		return s.focus((s.Focus + fieldCount - 1) % fieldCount), ActionNone
	case "enter":
		if s.Focus < fieldCount-1 {
			return s.focus(s.Focus + 1), ActionNone
		}
		if err := session.CheckPasswords(s.Password(), s.Fields[fieldConfirm].Value()); err != nil {
			s.Alert = session.Message(err, "Passwords do not match")
			return s, ActionNone
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

func (s State) Failed(alert string) State {
	s.Submitting = false
	s.Alert = alert
	return s
}

func View(t theme.Theme, state State, width, height int) string {
	button := t.Button().Render("Create Account")
	if state.Submitting {
		button = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("Creating account...")
	}

	parts := []string{
		splash.LogoView(t),
		"",
		t.Title().Render("Create an account"),
		"",
	}
	for _, f := range state.Fields {
		parts = append(parts, f.LabeledView(t))
	}
	parts = append(parts, "", button)
	if state.Alert != "" {
		parts = append(parts, "", t.Error().Render(state.Alert))
	}
	parts = append(parts, "", t.Muted().Render("enter: next/submit · tab: switch field · esc: back to sign in · ctrl+c: quit"))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...),
	)
}
