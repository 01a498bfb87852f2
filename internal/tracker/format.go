package tracker

import (
	"math"
	"strconv"
	"time"
)

const (
	displayPosInf = "∞"
	displayNegInf = "-∞"
	displayNaN    = "n/a"
)

// FormatFixed renders v with the given number of decimals, rounding halves
// away from zero. Non-finite values render as ∞, -∞ or n/a.
func FormatFixed(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return displayNaN
	case math.IsInf(v, 1):
		return displayPosInf
	case math.IsInf(v, -1):
		return displayNegInf
	}

	scale := math.Pow10(decimals)
	rounded := math.Round(v*scale) / scale
	if math.IsInf(rounded, 0) || math.IsNaN(rounded) {
		rounded = v
	}
	if rounded == 0 {
		rounded = 0 // normalize -0
	}
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}

// FormatPlain renders v with the fewest digits that round-trip.
func FormatPlain(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatFixed(v, 0)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSample renders a present sample with FormatFixed and an absent one
// as "".
func FormatSample(s Sample, decimals int) string {
	if !s.Valid {
		return ""
	}
	return FormatFixed(s.Value, decimals)
}

// FormatSigned is FormatFixed with an explicit "+" on non-negative values.
func FormatSigned(v float64, decimals int) string {
	out := FormatFixed(v, decimals)
	if v >= 0 && !math.IsInf(v, 0) {
		return "+" + out
	}
	return out
}

const displayDateLayout = "1/2/2006"

func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

const weekLabelLayout = "Jan-02-06"

// FormatWeekLabel renders the first day of a week as a table row label,
// e.g. "Nov-12-20".
func FormatWeekLabel(t time.Time) string {
	return t.Format(weekLabelLayout)
}
