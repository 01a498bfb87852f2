package tracker

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	wt "github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/tui/theme"
)

var now = time.Date(2020, time.November, 14, 9, 0, 0, 0, time.UTC)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "ctrl+o":
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

// press feeds keys and returns the last action.
func press(s State, keys ...string) (State, Action) {
	var a Action
	for _, k := range keys {
		if len([]rune(k)) > 1 && !isNamed(k) {
			for _, r := range k {
				s, a = s.Update(key(string(r)))
			}
			continue
		}
		s, a = s.Update(key(k))
	}
	return s, a
}

func isNamed(k string) bool {
	switch k {
	case "enter", "esc", "tab", "up", "down", "left", "right", "ctrl+o":
		return true
	}
	return false
}

func loaded() State {
	return New().WithLoaded(wt.Default(), now)
}

func TestNotLoadedIgnoresEdits(t *testing.T) {
	t.Parallel()

	s, a := press(New(), "n")
	if a != ActionNone || len(s.Tracker.Weeks) != 0 {
		t.Errorf("edit before load: action %v, weeks %d", a, len(s.Tracker.Weeks))
	}
	if _, a := press(New(), "q"); a != ActionQuit {
		t.Errorf("q before load action = %v, want quit", a)
	}
}

func TestEditInputField(t *testing.T) {
	t.Parallel()

	// starting weight is the fourth field
	s, a := press(loaded(), "down", "down", "down", "enter", "180", "enter")
	if a != ActionEdited {
		t.Fatalf("action = %v, want edited", a)
	}
	if got := s.Tracker.Inputs.StartingWeight; got != 180 {
		t.Errorf("StartingWeight = %v, want 180", got)
	}
	if s.Editing {
		t.Error("still editing after commit")
	}
}

func TestTypingStartsEdit(t *testing.T) {
	t.Parallel()

	s, _ := press(loaded(), "down", "down", "down", "down", "1", "9", "0", "enter")
	if got := s.Tracker.Inputs.GoalWeight; got != 190 {
		t.Errorf("GoalWeight = %v, want 190", got)
	}
}

func TestEscCancelsEdit(t *testing.T) {
	t.Parallel()

	s, a := press(loaded(), "down", "down", "down", "enter", "999", "esc")
	if a != ActionNone || s.Editing {
		t.Errorf("action = %v, editing = %v", a, s.Editing)
	}
	if s.Tracker.Inputs.StartingWeight != 0 {
		t.Errorf("StartingWeight = %v after cancel", s.Tracker.Inputs.StartingWeight)
	}
}

func TestUnitToggle(t *testing.T) {
	t.Parallel()

	s := loaded()
	s.Tracker, _ = s.Tracker.SetCell(0, wt.KindWeights, wt.Monday, "182")

	s, a := press(s, "down", "enter")
	if a != ActionEdited {
		t.Fatalf("action = %v, want edited", a)
	}
	if s.Tracker.Inputs.WeightUnit != wt.WeightUnitKg {
		t.Errorf("WeightUnit = %v, want Kg", s.Tracker.Inputs.WeightUnit)
	}
	if got := s.Tracker.Cell(0, wt.KindWeights, wt.Monday); got != "182" {
		t.Errorf("weight changed by unit toggle: %q", got)
	}
	if s.Editing {
		t.Error("unit toggle opened the editor")
	}
}

func TestInvalidDateKeepsEditing(t *testing.T) {
	t.Parallel()

	s, a := press(loaded(), "enter", "x", "enter")
	if a != ActionNone {
		t.Errorf("action = %v, want none", a)
	}
	if !s.Editing || !s.StatusErr || s.Status == "" {
		t.Errorf("editing = %v, status = %q", s.Editing, s.Status)
	}
	if !s.Tracker.Inputs.StartDate.Equal(wt.DefaultStartDate) {
		t.Errorf("StartDate changed to %v", s.Tracker.Inputs.StartDate)
	}
}

func TestGridNavigationAndEdit(t *testing.T) {
	t.Parallel()

	s, _ := press(loaded(), "tab")
	if s.Section != SectionGrid {
		t.Fatalf("tab did not move to the grid")
	}

	s, a := press(s, "down", "right", "right", "2500", "enter")
	if a != ActionEdited {
		t.Fatalf("action = %v", a)
	}
	if got := s.Tracker.Cell(0, wt.KindCalories, wt.Tuesday); got != "2500" {
		t.Errorf("calories Tue = %q, want 2500", got)
	}

	s, a = press(s, "x")
	if a != ActionEdited || s.Tracker.Cell(0, wt.KindCalories, wt.Tuesday) != "" {
		t.Errorf("clear: action %v, cell %q", a, s.Tracker.Cell(0, wt.KindCalories, wt.Tuesday))
	}
}

func TestGridBounds(t *testing.T) {
	t.Parallel()

	s, _ := press(loaded(), "tab", "left", "up")
	if s.Section != SectionInputs || s.Field != len(wt.Fields)-1 {
		t.Errorf("up from the first grid row: section %v field %d", s.Section, s.Field)
	}

	s, _ = press(loaded(), "tab", "right", "right", "right", "right", "right", "right", "right", "right")
	if s.Day != wt.Saturday {
		t.Errorf("Day = %v, want Saturday", s.Day)
	}

	s, _ = press(loaded(), "tab", "down", "down", "down", "down", "down", "down", "down", "down")
	if s.Row != 5 {
		t.Errorf("Row = %d, want last row 5", s.Row)
	}
}

func TestAddWeek(t *testing.T) {
	t.Parallel()

	s, a := press(loaded(), "n")
	if a != ActionEdited || len(s.Tracker.Weeks) != wt.DefaultWeeks+1 {
		t.Errorf("action %v, weeks %d", a, len(s.Tracker.Weeks))
	}
}

func TestSignOutAndQuit(t *testing.T) {
	t.Parallel()

	if _, a := press(loaded(), "ctrl+o"); a != ActionSignOut {
		t.Errorf("ctrl+o action = %v", a)
	}
	if _, a := press(loaded(), "q"); a != ActionQuit {
		t.Errorf("q action = %v", a)
	}
	if _, a := press(loaded(), "enter", "q"); a != ActionNone {
		t.Errorf("q while editing action = %v, want none", a)
	}
}

func TestSaveStatus(t *testing.T) {
	t.Parallel()

	s := loaded().SaveQueued().SaveQueued()
	s = s.SaveFinished(nil)
	if s.Pending != 1 || s.StatusErr {
		t.Errorf("pending %d, err %v", s.Pending, s.StatusErr)
	}
	s = s.SaveFinished(errors.New("disk full"))
	if s.Pending != 0 || !s.StatusErr || !strings.Contains(s.Status, "Disk full") {
		t.Errorf("pending %d, status %q", s.Pending, s.Status)
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	s := loaded()
	s.Tracker, _ = s.Tracker.SetField(wt.FieldStartingWeight, "180")
	s.Tracker, _ = s.Tracker.SetField(wt.FieldGoalWeight, "190")
	s.Tracker, _ = s.Tracker.SetCell(0, wt.KindWeights, wt.Sunday, "182")
	s.Indicator.Email = "a@b.c"

	out := ansi.Strip(View(theme.New(), s, 160, 48))
	for _, want := range []string{
		"Initial Inputs",
		"Current Body Stats",
		"Weekly Progress",
		"Nov-12-20",
		"182.0",
		"20%",
		"11/14/2020",
		"● a@b.c",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
