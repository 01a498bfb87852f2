package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) TextAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent)
}

func (t Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
}

func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorDim)
}

func (t Theme) Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorNegative)
}

// Selected highlights the focused cell or field.
func (t Theme) Selected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorBgDark).Background(ColorAccent).Bold(true)
}

// Panel frames a titled block of the tracker screen.
func (t Theme) Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBgLight).
		Padding(0, 1)
}

func (t Theme) Button() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorBgDark).
		Background(ColorAccent).
		Padding(0, 2).
		Bold(true)
}

// Signed colors v green when it is zero or more and red otherwise.
func (t Theme) Signed(v float64) lipgloss.Style {
	if v >= 0 {
		return lipgloss.NewStyle().Foreground(ColorPositive)
	}
	return lipgloss.NewStyle().Foreground(ColorNegative)
}

func (t Theme) Background() color.Color {
	return t.background
}

func (t Theme) Foreground() color.Color {
	return t.foreground
}
