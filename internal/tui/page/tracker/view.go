package tracker

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	wt "github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/tui/components/footer"
	"github.com/garrettladley/weightrack/internal/tui/components/gauge"
	"github.com/garrettladley/weightrack/internal/tui/theme"
)

const (
	labelWidth = 18
	valueWidth = 12

	colWeek  = 10
	colKind  = 9
	colDay   = 7
	colAvg   = 7
	colDelta = 6
	colTDEE  = 6
)

var fieldLabels = map[wt.Field]string{
	wt.FieldStartDate:       "Start Date",
	wt.FieldWeightUnit:      "Weight Unit",
	wt.FieldCalorieUnit:     "Calorie Unit",
	wt.FieldStartingWeight:  "Starting Weight",
	wt.FieldGoalWeight:      "Goal Weight",
	wt.FieldGoalGainPerWeek: "Weekly Gain Goal",
	wt.FieldDailySurplus:    "Daily Surplus",
	wt.FieldTDEE:            "TDEE",
}

const keyHints = "↑↓←→/hjkl: move · enter: edit · x: clear · n: new week · tab: section · ctrl+o: sign out · q: quit"

func View(t theme.Theme, state State, width, height int) string {
	if !state.Loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, t.Muted().Render("Loading..."))
	}

	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		inputsPanel(t, state),
		" ",
		statsPanel(t, state),
		"  ",
		progressGauge(state),
	)

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		top,
		tablePanel(t, state),
		statusLine(t, state),
	)

	bar := footer.New(state.Indicator.Render(), width).Render()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.Place(width, max(height-lipgloss.Height(bar), 0), lipgloss.Center, lipgloss.Top, body),
		bar,
	)
}

func panel(t theme.Theme, title string, lines []string) string {
	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{t.Title().Render(title), ""}, lines...)...)
	return t.Panel().Render(content)
}

func row(t theme.Theme, label string, value string) string {
	return t.Muted().Width(labelWidth).Render(label+":") + value
}

func inputsPanel(t theme.Theme, state State) string {
	lines := make([]string, 0, len(wt.Fields))
	for i, f := range wt.Fields {
		focused := state.Section == SectionInputs && state.Field == i

		var value string
		switch {
		case focused && state.Editing:
			in := state.Input
			in.Width = valueWidth
			value = in.View(t)
		case f == wt.FieldStartDate:
			value = state.Tracker.FieldText(f)
		case f == wt.FieldWeightUnit || f == wt.FieldCalorieUnit:
			value = "‹ " + state.Tracker.FieldText(f) + " ›"
		default:
			value = state.Tracker.FieldText(f)
		}

		style := t.Base().Width(valueWidth)
		if focused && !state.Editing {
			style = t.Selected().Width(valueWidth)
		}
		if !(focused && state.Editing) {
			value = style.Render(value)
		}
		lines = append(lines, row(t, fieldLabels[f], value))
	}
	return panel(t, "Initial Inputs", lines)
}

func statsPanel(t theme.Theme, state State) string {
	var (
		in      = state.Tracker.Inputs
		stats   = state.Tracker.Stats(state.Now)
		wUnit   = in.WeightUnit.String()
		cUnit   = in.CalorieUnit.String()
		goalDay = "n/a"
	)
	if stats.HasGoalDate {
		goalDay = wt.FormatDate(stats.GoalDate)
	}

	lines := []string{
		row(t, "Today's Date", wt.FormatDate(stats.Today)),
		row(t, "Current Weight", wt.FormatFixed(stats.CurrentWeight, 1)+" "+wUnit),
		row(t, "Weight Change", t.Signed(stats.WeightDelta).Render(wt.FormatFixed(stats.WeightDelta, 1)+" "+wUnit)),
		row(t, "Estimated TDEE", "~"+wt.FormatPlain(stats.TDEE)+" "+cUnit+"/day"),
		row(t, "Goal Date", goalDay),
		row(t, "Daily Target", wt.FormatPlain(stats.DailyTarget)+" "+cUnit),
		row(t, "Weeks to Goal", wt.FormatFixed(stats.WeeksToGoal, 1)),
		row(t, "Day / Week", fmt.Sprintf("%d / %d", stats.DaysSinceStart, stats.WeekIndex+1)),
	}
	return panel(t, "Current Body Stats", lines)
}

func progressGauge(state State) string {
	p := state.Tracker.Stats(state.Now).Progress
	center := ""
	if p.Valid {
		center = wt.FormatFixed(p.Value*100, 0) + "%"
	}
	return gauge.New(p.Value, p.Valid, center, "GOAL", theme.ColorAccent,
		gauge.WithSize(18, 9),
		gauge.WithBgColor(theme.ColorDim),
		gauge.WithTextColor(theme.ColorAccent),
	).Render()
}

func cellText(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}

func tablePanel(t theme.Theme, state State) string {
	var (
		header = t.Muted().Bold(true)
		w      = func(n int) lipgloss.Style { return lipgloss.NewStyle().Width(n) }
	)

	cols := []string{header.Width(colWeek).Render("Week"), header.Width(colKind).Render("Stats")}
	for d := wt.Sunday; d <= wt.Saturday; d++ {
		cols = append(cols, header.Width(colDay).Render(d.String()))
	}
	cols = append(cols,
		header.Width(colAvg).Render("Avg."),
		header.Width(colDelta).Render("Δ"),
		header.Width(colTDEE).Render("TDEE"),
	)
	lines := []string{strings.Join(cols, "")}

	in := state.Tracker.Inputs
	for i, week := range state.Tracker.Weeks {
		for _, kind := range []wt.Kind{wt.KindWeights, wt.KindCalories} {
			var label, kindLabel, avg, delta, tdee string
			rowStyle := lipgloss.NewStyle().Foreground(theme.ColorWeight)
			gridRow := i * 2
			if kind == wt.KindWeights {
				label = wt.FormatWeekLabel(state.Tracker.WeekStart(i))
				kindLabel = "Weight"
				avg = wt.FormatSample(week.AverageWeight(), 1)
				delta = wt.FormatSample(week.WeightDelta(in.StartingWeight), 1)
				tdee = wt.FormatPlain(in.TDEE)
			} else {
				gridRow++
				kindLabel = "Calories"
				rowStyle = lipgloss.NewStyle().Foreground(theme.ColorCalories)
				avg = wt.FormatSample(week.AverageCalories(), 0)
			}

			cols := []string{w(colWeek).Render(label), rowStyle.Width(colKind).Render(kindLabel)}
			for d := wt.Sunday; d <= wt.Saturday; d++ {
				focused := state.Section == SectionGrid && state.Row == gridRow && state.Day == d
				switch {
				case focused && state.Editing:
					in := state.Input
					in.Width = colDay - 1
					cols = append(cols, w(colDay).Render(in.View(t)))
				case focused:
					cols = append(cols, t.Selected().Width(colDay-1).Render(cellText(state.Tracker.Cell(i, kind, d), colDay-1))+" ")
				default:
					cols = append(cols, w(colDay).Render(cellText(state.Tracker.Cell(i, kind, d), colDay-1)))
				}
			}
			cols = append(cols,
				w(colAvg).Render(avg),
				w(colDelta).Render(delta),
				w(colTDEE).Render(tdee),
			)
			lines = append(lines, strings.Join(cols, ""))
		}
	}

	return panel(t, "Weekly Progress", lines)
}

func statusLine(t theme.Theme, state State) string {
	switch {
	case state.Status != "" && state.StatusErr:
		return t.Error().Render(state.Status)
	case state.Status != "":
		return t.Base().Render(state.Status)
	case state.Pending > 0:
		return lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("saving...")
	default:
		return t.Muted().Render(keyHints)
	}
}
