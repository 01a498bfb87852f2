// Package tracker is the main screen: configuration inputs, current stats
// and the editable weekly grid.
package tracker

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/weightrack/internal/session"
	wt "github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/tui/components/auth"
	"github.com/garrettladley/weightrack/internal/tui/components/textfield"
)

type Section uint8

const (
	SectionInputs Section = iota
	SectionGrid
)

type Action uint

const (
	ActionNone Action = iota
	// ActionEdited means Tracker changed and must be saved.
	ActionEdited
	ActionSignOut
	ActionQuit
)

type State struct {
	Tracker wt.State
	Loaded  bool
	Now     time.Time

	Section Section
	Field   int
	// Row indexes the grid rows: two per week, weights first.
	Row int
	Day wt.Day

	Editing bool
	Input   textfield.Model

	Status    string
	StatusErr bool
	Pending   int

	Indicator auth.Indicator
}

func New() State {
	return State{Indicator: auth.Indicator{Checked: true}}
}

// WithLoaded installs the persisted state. Edits are refused until then.
func (s State) WithLoaded(state wt.State, now time.Time) State {
	s.Tracker = state
	s.Loaded = true
	s.Now = now
	s.Row = max(min(s.Row, s.rowCount()-1), 0)
	return s
}

func (s State) rowCount() int {
	return len(s.Tracker.Weeks) * 2
}

// Cursor returns the grid coordinates of the focused row.
func (s State) Cursor() (week int, kind wt.Kind) {
	kind = wt.KindWeights
	if s.Row%2 == 1 {
		kind = wt.KindCalories
	}
	return s.Row / 2, kind
}

func (s State) field() wt.Field {
	return wt.Fields[s.Field]
}

func (s State) Update(msg tea.KeyPressMsg) (State, Action) {
	if !s.Loaded {
		if msg.String() == "q" {
			return s, ActionQuit
		}
		return s, ActionNone
	}
	if s.Editing {
		return s.updateEditing(msg)
	}

	switch msg.String() {
	case "q":
		return s, ActionQuit
	case "ctrl+o":
		return s, ActionSignOut
	case "n":
		s.Tracker = s.Tracker.AddWeek()
		return s.edited()
	case "tab":
		if s.Section == SectionInputs {
			s.Section = SectionGrid
		} else {
			s.Section = SectionInputs
		}
	case "up", "k":
		s = s.moveVertical(-1)
	case "down", "j":
		s = s.moveVertical(1)
	case "left", "h":
		if s.Section == SectionGrid {
			s.Day = max(s.Day-1, wt.Sunday)
		}
	case "right", "l":
		if s.Section == SectionGrid {
			s.Day = min(s.Day+1, wt.Saturday)
		}
	case "enter":
		return s.activate()
	case "delete", "backspace", "x":
		if s.Section == SectionGrid {
			return s.commitCell("")
		}
	default:
		if startsNumber(msg.Text) && (s.Section == SectionGrid || s.field().Numeric()) {
			s = s.beginEdit("")
			s.Input, _ = s.Input.Update(msg)
		}
	}
	return s, ActionNone
}

func startsNumber(text string) bool {
	if len(text) != 1 {
		return false
	}
	c := text[0]
	return (c >= '0' && c <= '9') || c == '.' || c == '-'
}

func (s State) moveVertical(delta int) State {
	switch s.Section {
	case SectionInputs:
		next := s.Field + delta
		switch {
		case next < 0:
			return s
		case next >= len(wt.Fields):
			s.Section = SectionGrid
			s.Row = 0
		default:
			s.Field = next
		}
	case SectionGrid:
		next := s.Row + delta
		switch {
		case next < 0:
			s.Section = SectionInputs
			s.Field = len(wt.Fields) - 1
		case next >= s.rowCount():
			return s
		default:
			s.Row = next
		}
	}
	return s
}

// activate is Enter outside edit mode: units cycle in place, everything else
// opens the editor.
func (s State) activate() (State, Action) {
	if s.Section == SectionInputs {
		switch s.field() {
		case wt.FieldWeightUnit:
			s.Tracker = s.Tracker.WithWeightUnit(s.Tracker.Inputs.WeightUnit.Next())
			return s.edited()
		case wt.FieldCalorieUnit:
			s.Tracker = s.Tracker.WithCalorieUnit(s.Tracker.Inputs.CalorieUnit.Next())
			return s.edited()
		}
		return s.beginEdit(s.Tracker.FieldText(s.field())), ActionNone
	}
	week, kind := s.Cursor()
	return s.beginEdit(s.Tracker.Cell(week, kind, s.Day)), ActionNone
}

func (s State) beginEdit(initial string) State {
	input := textfield.New("")
	input.Limit = 24
	s.Input = input.SetValue(initial).Focus()
	s.Editing = true
	s.Status = ""
	s.StatusErr = false
	return s
}

func (s State) updateEditing(msg tea.KeyPressMsg) (State, Action) {
	switch msg.String() {
	case "esc":
		s.Editing = false
		return s, ActionNone
	case "enter":
		if s.Section == SectionInputs {
			return s.commitField(s.Input.Value())
		}
		return s.commitCell(s.Input.Value())
	}
	s.Input, _ = s.Input.Update(msg)
	return s, ActionNone
}

func (s State) commitField(raw string) (State, Action) {
	next, err := s.Tracker.SetField(s.field(), raw)
	if err != nil {
		s.Status = session.Message(err, "Invalid value")
		s.StatusErr = true
		return s, ActionNone
	}
	s.Tracker = next
	return s.edited()
}

func (s State) commitCell(raw string) (State, Action) {
	week, kind := s.Cursor()
	next, err := s.Tracker.SetCell(week, kind, s.Day, raw)
	if err != nil {
		s.Status = session.Message(err, "Invalid value")
		s.StatusErr = true
		return s, ActionNone
	}
	s.Tracker = next
	return s.edited()
}

func (s State) edited() (State, Action) {
	s.Editing = false
	s.Status = ""
	s.StatusErr = false
	return s, ActionEdited
}

// SaveQueued records a write handed to the autosaver.
func (s State) SaveQueued() State {
	s.Pending++
	return s
}

// SaveFinished records a write result. Failures stay on the status line
// until the next edit.
func (s State) SaveFinished(err error) State {
	s.Pending = max(s.Pending-1, 0)
	if err != nil {
		s.Status = "Save failed: " + session.Message(err, "unknown error")
		s.StatusErr = true
	}
	return s
}

// Failed shows a non-fatal error, e.g. a failed sign-out.
func (s State) Failed(msg string) State {
	s.Status = msg
	s.StatusErr = true
	s.Indicator.Pending = false
	return s
}
