package tracker

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	go_json "github.com/goccy/go-json"
)

// StorageKey is the single key the tracker blob lives under.
const StorageKey = "weightTrackerData"

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type blob struct {
	Inputs blobInputs `json:"inputs"`
	Weeks  []blobWeek `json:"weeks"`
}

type blobInputs struct {
	StartDate       string     `json:"startDate"`
	WeightUnit      string     `json:"weightUnit"`
	CalorieUnit     string     `json:"calorieUnit"`
	StartingWeight  blobNumber `json:"startingWeight"`
	GoalWeight      blobNumber `json:"goalWeight"`
	GoalGainPerWeek blobNumber `json:"goalGainPerWeek"`
	DailySurplus    blobNumber `json:"dailySurplus"`
	TDEE            blobNumber `json:"tdee"`
}

type blobWeek struct {
	Weights  []blobNumber `json:"weights"`
	Calories []blobNumber `json:"calories"`
}

// blobNumber is a JSON number or null. Numbers written as strings are read
// leniently so hand-edited blobs still load.
type blobNumber Sample

var (
	_ go_json.Marshaler   = blobNumber{}
	_ go_json.Unmarshaler = (*blobNumber)(nil)
)

func (n blobNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid || math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.Value, 'f', -1, 64), nil
}

func (n *blobNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = blobNumber{}
	case len(data) > 0 && data[0] == '"':
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("invalid number string %s: %w", data, err)
		}
		v, ok := ParseLooseFloat(s)
		*n = blobNumber{Value: v, Valid: ok}
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid number %s: %w", data, err)
		}
		*n = blobNumber{Value: v, Valid: !math.IsInf(v, 0)}
	}
	return nil
}

// Marshal encodes s in the blob format: {"inputs":{...},"weeks":[...]}
// with absent slots as null and the start date as an ISO-8601 timestamp.
func Marshal(s State) ([]byte, error) {
	in := s.Inputs
	b := blob{
		Inputs: blobInputs{
			StartDate:       in.StartDate.UTC().Format(isoLayout),
			WeightUnit:      string(in.WeightUnit),
			CalorieUnit:     string(in.CalorieUnit),
			StartingWeight:  blobNumber(Some(in.StartingWeight)),
			GoalWeight:      blobNumber(Some(in.GoalWeight)),
			GoalGainPerWeek: blobNumber(Some(in.GoalGainPerWeek)),
			DailySurplus:    blobNumber(Some(in.DailySurplus)),
			TDEE:            blobNumber(Some(in.TDEE)),
		},
		Weeks: make([]blobWeek, len(s.Weeks)),
	}
	for i, w := range s.Weeks {
		b.Weeks[i] = blobWeek{
			Weights:  toBlobRow(w.Weights),
			Calories: toBlobRow(w.Calories),
		}
	}

	data, err := go_json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tracker state: %w", err)
	}
	return data, nil
}

func toBlobRow(row [DaysPerWeek]Sample) []blobNumber {
	out := make([]blobNumber, DaysPerWeek)
	for i, sample := range row {
		out[i] = blobNumber(sample)
	}
	return out
}

// Unmarshal decodes a blob written by Marshal. Rows are padded or truncated
// to seven days, unknown units and unreadable dates fall back to their
// defaults, and an empty week list becomes DefaultWeeks empty weeks.
func Unmarshal(data []byte) (State, error) {
	var b blob
	if err := go_json.Unmarshal(data, &b); err != nil {
		return State{}, fmt.Errorf("failed to unmarshal tracker state: %w", err)
	}

	in := DefaultInputs()
	if t, err := ParseDate(b.Inputs.StartDate); err == nil {
		in.StartDate = t
	}
	if u, err := ParseWeightUnit(b.Inputs.WeightUnit); err == nil {
		in.WeightUnit = u
	}
	if u, err := ParseCalorieUnit(b.Inputs.CalorieUnit); err == nil {
		in.CalorieUnit = u
	}
	in.StartingWeight = b.Inputs.StartingWeight.orZero()
	in.GoalWeight = b.Inputs.GoalWeight.orZero()
	in.GoalGainPerWeek = b.Inputs.GoalGainPerWeek.orZero()
	in.DailySurplus = b.Inputs.DailySurplus.orZero()
	in.TDEE = b.Inputs.TDEE.orZero()

	s := State{Inputs: in}
	if len(b.Weeks) == 0 {
		s.Weeks = make([]Week, DefaultWeeks)
		return s, nil
	}

	s.Weeks = make([]Week, len(b.Weeks))
	for i, w := range b.Weeks {
		s.Weeks[i] = Week{
			Weights:  fromBlobRow(w.Weights),
			Calories: fromBlobRow(w.Calories),
		}
	}
	return s, nil
}

func (n blobNumber) orZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

func fromBlobRow(row []blobNumber) [DaysPerWeek]Sample {
	var out [DaysPerWeek]Sample
	for i := 0; i < DaysPerWeek && i < len(row); i++ {
		out[i] = Sample(row[i])
	}
	return out
}
