package notation

import (
	"errors"
	"testing"
)

// TestSplitGenderDefaultsWomen verifies that without a '/' the women's value
// equals the men's value.
func TestSplitGenderDefaultsWomen(t *testing.T) {
	for _, in := range []string{"21", "400m", "15cal", "80kg", "85%", "7"} {
		sp, err := SplitGender(in)
		if err != nil {
			t.Fatalf("SplitGender(%q): unexpected error: %v", in, err)
		}
		if sp.Women != sp.Men {
			t.Errorf("SplitGender(%q): women = %d, want %d", in, sp.Women, sp.Men)
		}
	}
}

// TestSplitGenderRoundTrip verifies "<m>/<w><unit>" yields exactly m, w and unit.
func TestSplitGenderRoundTrip(t *testing.T) {
	cases := []struct {
		in          string
		men, women  uint64
		unit        string
	}{
		{"43/30kg", 43, 30, "kg"},
		{"21/15", 21, 15, ""},
		{"400/300m", 400, 300, "m"},
		{"15/12cal", 15, 12, "cal"},
		{"95/65lb", 95, 65, "lb"},
	}
	for _, tc := range cases {
		sp, err := SplitGender(tc.in)
		if err != nil {
			t.Fatalf("SplitGender(%q): unexpected error: %v", tc.in, err)
		}
		if sp.Men != tc.men || sp.Women != tc.women || sp.Unit != tc.unit {
			t.Errorf("SplitGender(%q) = %+v, want {%d %d %q}", tc.in, sp, tc.men, tc.women, tc.unit)
		}
	}
}

// TestSplitGenderRejectsEmpty verifies that a missing number on either side
// of the split fails.
func TestSplitGenderRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "kg", "43/kg", "/30kg"} {
		if _, err := SplitGender(in); err == nil {
			t.Errorf("SplitGender(%q): expected error", in)
		}
	}
}

// TestParseMeasureDispatch verifies the classification order and display of
// each measure type.
func TestParseMeasureDispatch(t *testing.T) {
	cases := []struct {
		in   string
		typ  MeasureType
		want string
	}{
		{"21", MeasureReps, "21"},
		{"21/15", MeasureReps, "21/15"},
		{"400m", MeasureDistance, "400m"},
		{"400/300m", MeasureDistance, "400/300m"},
		{"5k", MeasureDistance, "5k"},
		{"2km", MeasureDistance, "2km"},
		{"1mile", MeasureDistance, "1mile"},
		{"15cal", MeasureCalories, "15 calories"},
		{"15/12cal", MeasureCalories, "15/12 calories"},
		{"10cals", MeasureCalories, "10 calories"},
		{"30sec", MeasureDuration, "30 sec"},
		{"90s", MeasureDuration, "90 sec"},
		{"2min", MeasureDuration, "2 min"},
		{"max", MeasureMaxEffort, "Max reps of"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := ParseMeasure(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Type != tc.typ {
				t.Errorf("type = %v, want %v", m.Type, tc.typ)
			}
			if got := m.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

// TestParseMeasureErrors verifies malformed measures fail with *MeasureError.
func TestParseMeasureErrors(t *testing.T) {
	for _, in := range []string{"cal", "m", "12abc", "/5", "sec"} {
		_, err := ParseMeasure(in)
		var me *MeasureError
		if !errors.As(err, &me) {
			t.Errorf("ParseMeasure(%q) error = %v, want *MeasureError", in, err)
		}
	}
}

// TestParseRestPeriod verifies the r<digits><unit> grammar and its display.
func TestParseRestPeriod(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want string
	}{
		{"r1m", true, "Rest 1 minute"},
		{"r2m", true, "Rest 2 minutes"},
		{"r90s", true, "Rest 90 seconds"},
		{"r30sec", true, "Rest 30 seconds"},
		{"R3MIN", true, "Rest 3 minutes"},
		{"row", false, ""},
		{"run", false, ""},
		{"r1", false, ""},
		{"r1km", false, ""},
		{"rest", false, ""},
	}
	for _, tc := range cases {
		m, ok := ParseRestPeriod(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseRestPeriod(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && m.String() != tc.want {
			t.Errorf("ParseRestPeriod(%q) = %q, want %q", tc.in, m.String(), tc.want)
		}
	}
}

// TestParseWeight verifies units, gender split and display.
func TestParseWeight(t *testing.T) {
	cases := []struct {
		in   string
		want string
		men  uint64
		wom  uint64
	}{
		{"80kg", "80kg", 80, 80},
		{"43/30kg", "43/30kg", 43, 30},
		{"85%", "85%", 85, 85},
		{"135lb", "135lb", 135, 135},
		{"95/65lbs", "95/65lb", 95, 65},
		{"22/15KG", "22/15kg", 22, 15},
	}
	for _, tc := range cases {
		w, err := ParseWeight(tc.in)
		if err != nil {
			t.Fatalf("ParseWeight(%q): unexpected error: %v", tc.in, err)
		}
		if w.String() != tc.want || w.Men != tc.men || w.Women != tc.wom {
			t.Errorf("ParseWeight(%q) = %+v (%q), want %q", tc.in, w, w.String(), tc.want)
		}
	}
}

// TestParseWeightErrors verifies bad weights fail with *WeightError.
func TestParseWeightErrors(t *testing.T) {
	for _, in := range []string{"kg", "80st", "/30kg", "80"} {
		_, err := ParseWeight(in)
		var we *WeightError
		if !errors.As(err, &we) {
			t.Errorf("ParseWeight(%q) error = %v, want *WeightError", in, err)
		}
	}
}

// TestParseRepMax verifies digits are kept and everything else dropped.
func TestParseRepMax(t *testing.T) {
	cases := map[string]uint64{"1rm": 1, "3RM": 3, "10rm": 10}
	for in, want := range cases {
		rm, err := ParseRepMax(in)
		if err != nil {
			t.Fatalf("ParseRepMax(%q): unexpected error: %v", in, err)
		}
		if rm.Count != want {
			t.Errorf("ParseRepMax(%q) = %d, want %d", in, rm.Count, want)
		}
	}
	if got := (RepMax{Count: 3}).String(); got != "3RM" {
		t.Errorf("String() = %q, want %q", got, "3RM")
	}

	_, err := ParseRepMax("rm")
	var rme *RepMaxError
	if !errors.As(err, &rme) {
		t.Errorf("ParseRepMax(%q) error = %v, want *RepMaxError", "rm", err)
	}
}
