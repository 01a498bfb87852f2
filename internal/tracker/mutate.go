package tracker

import (
	"fmt"
	"strings"
	"time"
)

// Field names one configuration input. The values match the blob keys.
type Field string

const (
	FieldStartDate       Field = "startDate"
	FieldWeightUnit      Field = "weightUnit"
	FieldCalorieUnit     Field = "calorieUnit"
	FieldStartingWeight  Field = "startingWeight"
	FieldGoalWeight      Field = "goalWeight"
	FieldGoalGainPerWeek Field = "goalGainPerWeek"
	FieldDailySurplus    Field = "dailySurplus"
	FieldTDEE            Field = "tdee"
)

// Fields lists every input in form order.
var Fields = []Field{
	FieldStartDate,
	FieldWeightUnit,
	FieldCalorieUnit,
	FieldStartingWeight,
	FieldGoalWeight,
	FieldGoalGainPerWeek,
	FieldDailySurplus,
	FieldTDEE,
}

// ParseField matches s against the field names ignoring case, '-' and '_',
// so "starting-weight" and "STARTING_WEIGHT" both name FieldStartingWeight.
func ParseField(s string) (Field, error) {
	norm := normalizeFieldName(s)
	for _, f := range Fields {
		if normalizeFieldName(string(f)) == norm {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
}

func normalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

func (f Field) Numeric() bool {
	switch f {
	case FieldStartDate, FieldWeightUnit, FieldCalorieUnit:
		return false
	default:
		return true
	}
}

const dateLayout = time.DateOnly

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
}

// SetField replaces one input from user text. Numeric inputs that do not
// parse become 0. Units and dates that do not parse are errors and leave s
// unchanged.
func (s State) SetField(field Field, raw string) (State, error) {
	in := s.Inputs

	switch field {
	case FieldStartDate:
		t, err := ParseDate(raw)
		if err != nil {
			return s, err
		}
		in.StartDate = t
	case FieldWeightUnit:
		u, err := ParseWeightUnit(raw)
		if err != nil {
			return s, err
		}
		in.WeightUnit = u
	case FieldCalorieUnit:
		u, err := ParseCalorieUnit(raw)
		if err != nil {
			return s, err
		}
		in.CalorieUnit = u
	case FieldStartingWeight, FieldGoalWeight, FieldGoalGainPerWeek, FieldDailySurplus, FieldTDEE:
		v, _ := ParseLooseFloat(raw)
		*in.scalar(field) = v
	default:
		return s, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	return s.WithInputs(in), nil
}

func (in *Inputs) scalar(field Field) *float64 {
	switch field {
	case FieldStartingWeight:
		return &in.StartingWeight
	case FieldGoalWeight:
		return &in.GoalWeight
	case FieldGoalGainPerWeek:
		return &in.GoalGainPerWeek
	case FieldDailySurplus:
		return &in.DailySurplus
	case FieldTDEE:
		return &in.TDEE
	default:
		return nil
	}
}

func (s State) WithInputs(in Inputs) State {
	next := s.Clone()
	next.Inputs = in
	return next
}

func (s State) WithWeightUnit(u WeightUnit) State {
	in := s.Inputs
	in.WeightUnit = u
	return s.WithInputs(in)
}

func (s State) WithCalorieUnit(u CalorieUnit) State {
	in := s.Inputs
	in.CalorieUnit = u
	return s.WithInputs(in)
}

// FieldText renders the current value of field as editable text.
func (s State) FieldText(field Field) string {
	in := s.Inputs
	switch field {
	case FieldStartDate:
		return in.StartDate.Format(dateLayout)
	case FieldWeightUnit:
		return in.WeightUnit.String()
	case FieldCalorieUnit:
		return in.CalorieUnit.String()
	default:
		if p := in.scalar(field); p != nil {
			return FormatPlain(*p)
		}
		return ""
	}
}

// SetCell replaces one daily slot from user text. Empty or unparseable text
// clears the slot. Weights keep decimals; calories are truncated to whole
// numbers. A week index past the end grows the log with empty weeks.
func (s State) SetCell(week int, kind Kind, day Day, raw string) (State, error) {
	var sample Sample
	if strings.TrimSpace(raw) != "" {
		parse := ParseLooseFloat
		if kind == KindCalories {
			parse = ParseLooseInt
		}
		if v, ok := parse(raw); ok {
			sample = Some(v)
		}
	}
	return s.SetSample(week, kind, day, sample)
}

func (s State) SetSample(week int, kind Kind, day Day, sample Sample) (State, error) {
	if week < 0 {
		return s, fmt.Errorf("%w: %d", ErrWeekOutOfRange, week)
	}
	if !day.Valid() {
		return s, fmt.Errorf("%w: %d", ErrDayOutOfRange, int(day))
	}
	if kind != KindWeights && kind != KindCalories {
		return s, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	next := s.Clone()
	if week >= len(next.Weeks) {
		next.Weeks = append(next.Weeks, make([]Week, week-len(next.Weeks)+1)...)
	}
	next.Weeks[week].row(kind)[day] = sample
	return next, nil
}

// Cell returns the text shown for one slot: "" when absent.
func (s State) Cell(week int, kind Kind, day Day) string {
	if week < 0 || week >= len(s.Weeks) || !day.Valid() {
		return ""
	}
	sample := s.Weeks[week].row(kind)[day]
	if !sample.Valid {
		return ""
	}
	return FormatPlain(sample.Value)
}

// AddWeek appends one empty week.
func (s State) AddWeek() State {
	next := s.Clone()
	next.Weeks = append(next.Weeks, Week{})
	return next
}
