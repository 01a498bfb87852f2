// Package textfield is a single-line text input.
package textfield

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/weightrack/internal/tui/theme"
)

const (
	maskRune = '•'
	cursor   = "▏"
)

type Model struct {
	Label       string
	Placeholder string
	Masked      bool
	// Width pads the rendered value; zero renders it unpadded.
	Width int
	// Limit caps the number of runes; zero means unlimited.
	Limit int

	value   []rune
	pos     int
	focused bool
}

func New(label string) Model {
	return Model{Label: label}
}

func (m Model) Value() string {
	return string(m.value)
}

// SetValue replaces the text and moves the cursor to its end.
func (m Model) SetValue(s string) Model {
	m.value = []rune(s)
	if m.Limit > 0 && len(m.value) > m.Limit {
		m.value = m.value[:m.Limit]
	}
	m.pos = len(m.value)
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Focus() Model {
	m.focused = true
	return m
}

func (m Model) Blur() Model {
	m.focused = false
	return m
}

// Update applies an editing key. changed reports whether the text changed.
// Keys the field does not handle are ignored.
func (m Model) Update(msg tea.KeyPressMsg) (Model, bool) {
	if !m.focused {
		return m, false
	}

	switch msg.String() {
	case "left", "ctrl+b":
		m.pos = max(m.pos-1, 0)
		return m, false
	case "right", "ctrl+f":
		m.pos = min(m.pos+1, len(m.value))
		return m, false
	case "home", "ctrl+a":
		m.pos = 0
		return m, false
	case "end", "ctrl+e":
		m.pos = len(m.value)
		return m, false
	case "backspace", "ctrl+h":
		if m.pos == 0 {
			return m, false
		}
		m.value = append(m.value[:m.pos-1:m.pos-1], m.value[m.pos:]...)
		m.pos--
		return m, true
	case "delete", "ctrl+d":
		if m.pos == len(m.value) {
			return m, false
		}
		m.value = append(m.value[:m.pos:m.pos], m.value[m.pos+1:]...)
		return m, true
	case "ctrl+u":
		if m.pos == 0 {
			return m, false
		}
		m.value = append([]rune(nil), m.value[m.pos:]...)
		m.pos = 0
		return m, true
	case "ctrl+k":
		if m.pos == len(m.value) {
			return m, false
		}
		m.value = m.value[:m.pos:m.pos]
		return m, true
	}

	return m.insert(msg.Text)
}

func (m Model) insert(text string) (Model, bool) {
	var runes []rune
	for _, r := range text {
		if r >= ' ' && r != 0x7f {
			runes = append(runes, r)
		}
	}
	if m.Limit > 0 {
		runes = runes[:min(len(runes), max(m.Limit-len(m.value), 0))]
	}
	if len(runes) == 0 {
		return m, false
	}

	value := make([]rune, 0, len(m.value)+len(runes))
	value = append(value, m.value[:m.pos]...)
	value = append(value, runes...)
	value = append(value, m.value[m.pos:]...)
	m.value = value
	m.pos += len(runes)
	return m, true
}

func (m Model) display() []rune {
	if !m.Masked {
		return m.value
	}
	return []rune(strings.Repeat(string(maskRune), len(m.value)))
}

// View renders the field value only, with a cursor when focused.
func (m Model) View(t theme.Theme) string {
	text := m.display()

	var out string
	switch {
	case len(text) == 0 && !m.focused:
		out = t.Muted().Render(m.Placeholder)
	case m.focused:
		out = t.Base().Render(string(text[:m.pos])) +
			t.TextAccent().Render(cursor) +
			t.Base().Render(string(text[m.pos:]))
	default:
		out = t.Base().Render(string(text))
	}

	if pad := m.Width - lipgloss.Width(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}

// LabeledView renders the label above the value, framed while focused.
func (m Model) LabeledView(t theme.Theme) string {
	label := t.Muted().Render(m.Label)
	if m.focused {
		label = t.TextAccent().Render(m.Label)
	}

	border := theme.ColorBgLight
	if m.focused {
		border = theme.ColorAccent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width + 4)

	return lipgloss.JoinVertical(lipgloss.Left, label, box.Render(m.View(t)))
}
