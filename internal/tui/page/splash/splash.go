package splash

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/weightrack/internal/tui/theme"
)

const Duration = 1200 * time.Millisecond

const Logo = `
█   █ █▀▀ █ █▀▀ █ █ ▀█▀ █▀█ ▄▀█ █▀▀ █▄▀
█ █ █ █▀▀ █ █ █ █▀█  █  █▀▄ █▀█ █   █▀▄
▀▀ ▀▀ ▀▀▀ ▀ ▀▀▀ ▀ ▀  ▀  ▀ ▀ ▀ ▀ ▀▀▀ ▀ ▀`

const tagline = "weight · calories · goals"

type TickMsg struct{}

// State tracks the two conditions that end the splash: the minimum display
// time and the first session lookup.
type State struct {
	Elapsed bool
	Checked bool
}

func (s State) Done() bool {
	return s.Elapsed && s.Checked
}

func LogoView(t theme.Theme) string {
	return t.TextAccent().Render(Logo)
}

func View(t theme.Theme, width, height int) string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		LogoView(t),
		"",
		t.Muted().Render(tagline),
	)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
