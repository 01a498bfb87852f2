package tracker

import (
	"math"
	"time"
)

const (
	day = 24 * time.Hour

	// maxDateOffsetDays bounds GoalDate to roughly ±270,000 years, well
	// inside what time.Time can represent.
	maxDateOffsetDays = 1e8
)

// DaysSinceStart is the number of whole days from the start date to now,
// floored, so it is negative before the start date.
func (s State) DaysSinceStart(now time.Time) int {
	return int(math.Floor(float64(now.Sub(s.Inputs.StartDate)) / float64(day)))
}

// CurrentWeekIndex is the week containing now, or 0 when now falls outside
// the logged weeks.
func (s State) CurrentWeekIndex(now time.Time) int {
	idx := int(math.Floor(float64(s.DaysSinceStart(now)) / DaysPerWeek))
	if idx < 0 || idx >= len(s.Weeks) {
		return 0
	}
	return idx
}

func mean(samples []Sample) (float64, bool) {
	var sum float64
	var n int
	for _, sample := range samples {
		if sample.Valid {
			sum += sample.Value
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// AverageWeight is the mean of the present weights, absent if there are
// none.
func (w Week) AverageWeight() Sample {
	v, ok := mean(w.Weights[:])
	return Sample{Value: v, Valid: ok}
}

func (w Week) AverageCalories() Sample {
	v, ok := mean(w.Calories[:])
	return Sample{Value: v, Valid: ok}
}

// WeightDelta is AverageWeight minus startingWeight, absent when the week
// has no weights.
func (w Week) WeightDelta(startingWeight float64) Sample {
	avg := w.AverageWeight()
	if !avg.Valid {
		return Sample{}
	}
	return Some(avg.Value - startingWeight)
}

// CurrentWeight is the average weight of the current week, falling back to
// the starting weight when that week has no weights. Unlike
// Week.AverageWeight it is never absent.
func (s State) CurrentWeight(now time.Time) float64 {
	if len(s.Weeks) == 0 {
		return s.Inputs.StartingWeight
	}
	avg := s.Weeks[s.CurrentWeekIndex(now)].AverageWeight()
	if !avg.Valid {
		return s.Inputs.StartingWeight
	}
	return avg.Value
}

func (s State) WeightDelta(now time.Time) float64 {
	return s.CurrentWeight(now) - s.Inputs.StartingWeight
}

// WeeksToGoal divides the remaining gain by the weekly goal. A zero weekly
// goal yields ±Inf, or NaN when the goal is already met.
func (s State) WeeksToGoal() float64 {
	in := s.Inputs
	return (in.GoalWeight - in.StartingWeight) / in.GoalGainPerWeek
}

// GoalDate is the start date plus WeeksToGoal weeks. ok is false when
// WeeksToGoal is not finite or the date is out of range.
func (s State) GoalDate() (time.Time, bool) {
	weeks := s.WeeksToGoal()
	if math.IsInf(weeks, 0) || math.IsNaN(weeks) {
		return time.Time{}, false
	}
	days := weeks * DaysPerWeek
	if math.Abs(days) > maxDateOffsetDays {
		return time.Time{}, false
	}

	whole := math.Trunc(days)
	frac := time.Duration((days - whole) * float64(day))
	return s.Inputs.StartDate.AddDate(0, 0, int(whole)).Add(frac), true
}

func (s State) DailyTarget() float64 {
	return s.Inputs.TDEE + s.Inputs.DailySurplus
}

// WeekStart is the first day of week i.
func (s State) WeekStart(i int) time.Time {
	return s.Inputs.StartDate.AddDate(0, 0, i*DaysPerWeek)
}

// Stats is the "current body stats" panel.
type Stats struct {
	Today          time.Time
	DaysSinceStart int
	WeekIndex      int
	CurrentWeight  float64
	WeightDelta    float64
	TDEE           float64
	DailyTarget    float64
	WeeksToGoal    float64
	GoalDate       time.Time
	HasGoalDate    bool
	// Progress is the fraction of the way from the starting weight to the
	// goal weight, clamped to [0, 1]. Absent when no goal is set.
	Progress Sample
}

func (s State) Stats(now time.Time) Stats {
	goalDate, ok := s.GoalDate()
	return Stats{
		Today:          now,
		DaysSinceStart: s.DaysSinceStart(now),
		WeekIndex:      s.CurrentWeekIndex(now),
		CurrentWeight:  s.CurrentWeight(now),
		WeightDelta:    s.WeightDelta(now),
		TDEE:           s.Inputs.TDEE,
		DailyTarget:    s.DailyTarget(),
		WeeksToGoal:    s.WeeksToGoal(),
		GoalDate:       goalDate,
		HasGoalDate:    ok,
		Progress:       s.progress(now),
	}
}

func (s State) progress(now time.Time) Sample {
	span := s.Inputs.GoalWeight - s.Inputs.StartingWeight
	if span == 0 {
		return Sample{}
	}
	p := s.WeightDelta(now) / span
	return Some(math.Max(0, math.Min(1, p)))
}
