package tracker

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	s := exampleState(t)
	s, _ = s.SetField(FieldWeightUnit, "Kg")
	s, _ = s.SetCell(0, KindWeights, Sunday, "82.4")
	s, _ = s.SetCell(0, KindCalories, Saturday, "2700")
	s, _ = s.SetCell(4, KindCalories, Monday, "-150")

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalFormat(t *testing.T) {
	t.Parallel()

	s := Default()
	s, _ = s.SetCell(0, KindWeights, Monday, "182.5")

	data, err := Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	const want = `{"inputs":{"startDate":"2020-11-12T00:00:00.000Z","weightUnit":"Lb","calorieUnit":"Cal",` +
		`"startingWeight":0,"goalWeight":0,"goalGainPerWeek":0,"dailySurplus":0,"tdee":0},"weeks":[` +
		`{"weights":[null,182.5,null,null,null,null,null],"calories":[null,null,null,null,null,null,null]},` +
		`{"weights":[null,null,null,null,null,null,null],"calories":[null,null,null,null,null,null,null]},` +
		`{"weights":[null,null,null,null,null,null,null],"calories":[null,null,null,null,null,null,null]}]}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalNormalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, s State)
	}{
		{
			name:  "empty weeks become defaults",
			input: `{"inputs":{"startDate":"2021-03-01T00:00:00.000Z","weightUnit":"Kg","calorieUnit":"kJ","startingWeight":80},"weeks":[]}`,
			check: func(t *testing.T, s State) {
				if len(s.Weeks) != DefaultWeeks {
					t.Errorf("len(Weeks) = %d, want %d", len(s.Weeks), DefaultWeeks)
				}
				if s.Inputs.WeightUnit != WeightUnitKg || s.Inputs.CalorieUnit != CalorieUnitKJ {
					t.Errorf("units = %s/%s", s.Inputs.WeightUnit, s.Inputs.CalorieUnit)
				}
				if !s.Inputs.StartDate.Equal(date(2021, time.March, 1)) {
					t.Errorf("StartDate = %v", s.Inputs.StartDate)
				}
			},
		},
		{
			name:  "short and long rows",
			input: `{"inputs":{},"weeks":[{"weights":[180],"calories":[1,2,3,4,5,6,7,8,9]}]}`,
			check: func(t *testing.T, s State) {
				want := Week{}
				want.Weights[0] = Some(180)
				for i := range DaysPerWeek {
					want.Calories[i] = Some(float64(i + 1))
				}
				if diff := cmp.Diff([]Week{want}, s.Weeks); diff != "" {
					t.Errorf("weeks mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "unknown unit and bad date fall back",
			input: `{"inputs":{"startDate":"not a date","weightUnit":"stone","calorieUnit":""},"weeks":null}`,
			check: func(t *testing.T, s State) {
				if diff := cmp.Diff(DefaultInputs(), s.Inputs); diff != "" {
					t.Errorf("inputs mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "numbers as strings",
			input: `{"inputs":{"tdee":"2500"},"weeks":[{"weights":["181.2",""],"calories":[]}]}`,
			check: func(t *testing.T, s State) {
				if s.Inputs.TDEE != 2500 {
					t.Errorf("TDEE = %v, want 2500", s.Inputs.TDEE)
				}
				if s.Weeks[0].Weights[0] != Some(181.2) || s.Weeks[0].Weights[1].Valid {
					t.Errorf("weights = %v", s.Weeks[0].Weights)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := Unmarshal([]byte(tt.input))
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{``, `{`, `[]`, `{"weeks":{}}`, `{"weeks":[{"weights":[true]}]}`} {
		if _, err := Unmarshal([]byte(input)); err == nil {
			t.Errorf("Unmarshal(%q) error = nil, want error", input)
		}
	}
}
