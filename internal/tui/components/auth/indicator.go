package auth

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/weightrack/internal/tui/theme"
)

const statusDot = "●"

// Indicator shows who is signed in.
type Indicator struct {
	Checked bool
	Pending bool
	Email   string
}

func (a Indicator) Render() string {
	switch {
	case !a.Checked:
		return lipgloss.NewStyle().
			Foreground(theme.ColorBgLight).
			Render(statusDot + " checking...")
	case a.Pending:
		return lipgloss.NewStyle().
			Foreground(theme.ColorWarning).
			Render(statusDot + " signing out...")
	case a.Email != "":
		return lipgloss.NewStyle().
			Foreground(theme.ColorPositive).
			Render(statusDot + " " + a.Email)
	default:
		return lipgloss.NewStyle().
			Foreground(theme.ColorNegative).
			Render(statusDot + " signed out")
	}
}
