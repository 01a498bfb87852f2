package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent   = lipgloss.Color("#00F19F") // titles, focus, goal progress
	ColorWeight   = lipgloss.Color("#67AEE6") // weight rows
	ColorCalories = lipgloss.Color("#0093E7") // calorie rows
	ColorPositive = lipgloss.Color("#16EC06") // weight change >= 0
	ColorWarning  = lipgloss.Color("#FFDE00") // pending saves, in-flight auth
	ColorNegative = lipgloss.Color("#FF0026") // weight change < 0, errors
)

var (
	ColorBgDark  = lipgloss.Color("#101518")
	ColorBgLight = lipgloss.Color("#283339")
)
