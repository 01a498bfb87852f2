package handler

import (
	"errors"
	"math"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/weightrack/internal/service/tracking"
	"github.com/garrettladley/weightrack/internal/tracker"
)

const dateLayout = time.DateOnly

type trackerResponse struct {
	Inputs inputsResponse `json:"inputs"`
	Weeks  []weekResponse `json:"weeks"`
	Stats  statsResponse  `json:"stats"`
}

type inputsResponse struct {
	StartDate       string  `json:"startDate"`
	WeightUnit      string  `json:"weightUnit"`
	CalorieUnit     string  `json:"calorieUnit"`
	StartingWeight  float64 `json:"startingWeight"`
	GoalWeight      float64 `json:"goalWeight"`
	GoalGainPerWeek float64 `json:"goalGainPerWeek"`
	DailySurplus    float64 `json:"dailySurplus"`
	TDEE            float64 `json:"tdee"`
}

type weekResponse struct {
	Start           string     `json:"start"`
	Weights         []*float64 `json:"weights"`
	Calories        []*float64 `json:"calories"`
	AverageWeight   *float64   `json:"averageWeight"`
	AverageCalories *float64   `json:"averageCalories"`
	WeightDelta     *float64   `json:"weightDelta"`
}

// statsResponse uses null for values with no finite answer, such as weeks to
// goal with no weekly gain.
type statsResponse struct {
	Today          string   `json:"today"`
	DaysSinceStart int      `json:"daysSinceStart"`
	WeekIndex      int      `json:"weekIndex"`
	CurrentWeight  *float64 `json:"currentWeight"`
	WeightDelta    *float64 `json:"weightDelta"`
	TDEE           *float64 `json:"tdee"`
	DailyTarget    *float64 `json:"dailyTarget"`
	WeeksToGoal    *float64 `json:"weeksToGoal"`
	GoalDate       *string  `json:"goalDate"`
	Progress       *float64 `json:"progress"`
}

func toResponse(snap tracking.Snapshot) trackerResponse {
	s, st := snap.State, snap.Stats
	in := s.Inputs

	weeks := make([]weekResponse, len(s.Weeks))
	for i, w := range s.Weeks {
		weeks[i] = weekResponse{
			Start:           s.WeekStart(i).Format(dateLayout),
			Weights:         toRow(w.Weights),
			Calories:        toRow(w.Calories),
			AverageWeight:   sample(w.AverageWeight()),
			AverageCalories: sample(w.AverageCalories()),
			WeightDelta:     sample(w.WeightDelta(in.StartingWeight)),
		}
	}

	var goalDate *string
	if st.HasGoalDate {
		d := st.GoalDate.Format(dateLayout)
		goalDate = &d
	}

	return trackerResponse{
		Inputs: inputsResponse{
			StartDate:       in.StartDate.Format(dateLayout),
			WeightUnit:      in.WeightUnit.String(),
			CalorieUnit:     in.CalorieUnit.String(),
			StartingWeight:  in.StartingWeight,
			GoalWeight:      in.GoalWeight,
			GoalGainPerWeek: in.GoalGainPerWeek,
			DailySurplus:    in.DailySurplus,
			TDEE:            in.TDEE,
		},
		Weeks: weeks,
		Stats: statsResponse{
			Today:          st.Today.Format(dateLayout),
			DaysSinceStart: st.DaysSinceStart,
			WeekIndex:      st.WeekIndex,
			CurrentWeight:  finite(st.CurrentWeight),
			WeightDelta:    finite(st.WeightDelta),
			TDEE:           finite(st.TDEE),
			DailyTarget:    finite(st.DailyTarget),
			WeeksToGoal:    finite(st.WeeksToGoal),
			GoalDate:       goalDate,
			Progress:       sample(st.Progress),
		},
	}
}

func toRow(row [tracker.DaysPerWeek]tracker.Sample) []*float64 {
	out := make([]*float64, len(row))
	for i, s := range row {
		out[i] = sample(s)
	}
	return out
}

func sample(s tracker.Sample) *float64 {
	if v, ok := s.Get(); ok {
		return finite(v)
	}
	return nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// rawValue is user text for a field or cell. Clients may send a string, a
// number or null; null clears.
type rawValue string

var errInvalidValue = errors.New("value must be a string, number or null")

func (v *rawValue) UnmarshalJSON(data []byte) error {
	switch {
	case string(data) == "null":
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := go_json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = rawValue(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errInvalidValue
	}
	*v = rawValue(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
