// Package tracker models a weekly body-weight and calorie log, the
// statistics derived from it, and its persistence as a single JSON blob.
package tracker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidUnit    = errors.New("invalid unit")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidField   = errors.New("invalid field")
	ErrInvalidKind    = errors.New("invalid kind")
	ErrWeekOutOfRange = errors.New("week index out of range")
	ErrDayOutOfRange  = errors.New("day index out of range")
)

// WeightUnit and CalorieUnit are display labels. Values are never converted
// when the unit changes.
type WeightUnit string

const (
	WeightUnitLb WeightUnit = "Lb"
	WeightUnitKg WeightUnit = "Kg"
)

func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lb", "lbs":
		return WeightUnitLb, nil
	case "kg", "kgs":
		return WeightUnitKg, nil
	default:
		return "", fmt.Errorf("%w: weight unit %q (valid: Lb, Kg)", ErrInvalidUnit, s)
	}
}

// Next cycles to the other unit.
func (u WeightUnit) Next() WeightUnit {
	if u == WeightUnitKg {
		return WeightUnitLb
	}
	return WeightUnitKg
}

func (u WeightUnit) String() string { return string(u) }

type CalorieUnit string

const (
	CalorieUnitCal CalorieUnit = "Cal"
	CalorieUnitKJ  CalorieUnit = "kJ"
)

func ParseCalorieUnit(s string) (CalorieUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cal", "kcal":
		return CalorieUnitCal, nil
	case "kj":
		return CalorieUnitKJ, nil
	default:
		return "", fmt.Errorf("%w: calorie unit %q (valid: Cal, kJ)", ErrInvalidUnit, s)
	}
}

func (u CalorieUnit) Next() CalorieUnit {
	if u == CalorieUnitKJ {
		return CalorieUnitCal
	}
	return CalorieUnitKJ
}

func (u CalorieUnit) String() string { return string(u) }

// Day indexes a slot within a week. Sunday is 0.
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (d Day) Valid() bool { return d >= 0 && d < DaysPerWeek }

func (d Day) String() string {
	if !d.Valid() {
		return "Day(" + strconv.Itoa(int(d)) + ")"
	}
	return dayNames[d]
}

// ParseDay accepts an index ("0".."6") or a weekday name or abbreviation.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i, err := strconv.Atoi(s); err == nil {
		if d := Day(i); d.Valid() {
			return d, nil
		}
		return 0, fmt.Errorf("%w: %d", ErrDayOutOfRange, i)
	}
	if len(s) >= 3 {
		for i, name := range dayNames {
			if strings.HasPrefix(s, strings.ToLower(name)) {
				return Day(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDayOutOfRange, s)
}

// Kind selects the weight or calorie row of a week.
type Kind string

const (
	KindWeights  Kind = "weights"
	KindCalories Kind = "calories"
)

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weights", "weight", "w":
		return KindWeights, nil
	case "calories", "calorie", "cal", "c":
		return KindCalories, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: weights, calories)", ErrInvalidKind, s)
	}
}

// Sample is one optional daily observation. A present sample is always
// finite.
type Sample struct {
	Value float64
	Valid bool
}

func Some(v float64) Sample { return Sample{Value: v, Valid: true} }

func (s Sample) Get() (float64, bool) { return s.Value, s.Valid }

type Week struct {
	Weights  [DaysPerWeek]Sample
	Calories [DaysPerWeek]Sample
}

func (w *Week) row(kind Kind) *[DaysPerWeek]Sample {
	if kind == KindCalories {
		return &w.Calories
	}
	return &w.Weights
}

// Inputs is the configuration section of the form.
type Inputs struct {
	StartDate       time.Time
	WeightUnit      WeightUnit
	CalorieUnit     CalorieUnit
	StartingWeight  float64
	GoalWeight      float64
	GoalGainPerWeek float64
	DailySurplus    float64
	TDEE            float64
}

// State is everything that is persisted. Statistics are derived on demand.
type State struct {
	Inputs Inputs
	Weeks  []Week
}

const DefaultWeeks = 3

// DefaultStartDate is the start date of a fresh tracker.
var DefaultStartDate = time.Date(2020, time.November, 12, 0, 0, 0, 0, time.UTC)

func DefaultInputs() Inputs {
	return Inputs{
		StartDate:   DefaultStartDate,
		WeightUnit:  WeightUnitLb,
		CalorieUnit: CalorieUnitCal,
	}
}

// Default returns a tracker with DefaultWeeks empty weeks.
func Default() State {
	return State{
		Inputs: DefaultInputs(),
		Weeks:  make([]Week, DefaultWeeks),
	}
}

// Clone returns a State that shares no memory with s.
func (s State) Clone() State {
	return State{
		Inputs: s.Inputs,
		Weeks:  append([]Week(nil), s.Weeks...),
	}
}
