package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MeasureType tags what a number means in context.
type MeasureType uint8

const (
	MeasureReps MeasureType = iota + 1
	MeasureDistance
	MeasureCalories
	MeasureDuration
	MeasureMaxEffort
	MeasureRest
)

func (t MeasureType) String() string {
	switch t {
	case MeasureReps:
		return "reps"
	case MeasureDistance:
		return "distance"
	case MeasureCalories:
		return "calories"
	case MeasureDuration:
		return "duration"
	case MeasureMaxEffort:
		return "max"
	case MeasureRest:
		return "rest"
	default:
		return fmt.Sprintf("MeasureType(%d)", uint8(t))
	}
}

// Measure is one quantity attached to a movement. Men and Women hold the
// gender-split values; single-valued measures (duration, rest) keep the
// amount in both. MaxEffort carries no numbers.
type Measure struct {
	Type  MeasureType
	Men   uint64
	Women uint64
	Unit  string
}

// Split is the result of the shared gender-split scan.
type Split struct {
	Men   uint64
	Women uint64
	Unit  string
}

var errEmptyValue = errors.New("missing numeric value")

// SplitGender scans s left to right. A '/' switches digit accumulation from
// the men's value to the women's value, digits go to whichever is active and
// anything else lands in the unit. Without a '/', women's equals men's.
func SplitGender(s string) (Split, error) {
	var men, women, unit strings.Builder
	active := &men
	slash := false
	for _, r := range s {
		switch {
		case r == '/':
			active = &women
			slash = true
		case unicode.IsDigit(r):
			active.WriteRune(r)
		default:
			unit.WriteRune(r)
		}
	}

	m, err := parseCount(men.String())
	if err != nil {
		return Split{}, err
	}
	w := m
	if slash {
		if w, err = parseCount(women.String()); err != nil {
			return Split{}, err
		}
	}
	return Split{Men: m, Women: w, Unit: unit.String()}, nil
}

func parseCount(s string) (uint64, error) {
	if s == "" {
		return 0, errEmptyValue
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, err)
	}
	return n, nil
}

var (
	distanceUnits = []string{"miles", "mile", "mi", "km", "k", "m"}
	durationUnits = []string{"secs", "sec", "s", "mins", "min"}
)

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// ParseMeasure classifies and parses a captured measure run.
func ParseMeasure(s string) (Measure, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case hasAnySuffix(lower, distanceUnits):
		return parseSplitMeasure(s, lower, MeasureDistance)
	case strings.Contains(lower, "cal"):
		return parseSplitMeasure(s, lower, MeasureCalories)
	case hasAnySuffix(lower, durationUnits):
		return parseDuration(s, lower)
	case lower == "max":
		return Measure{Type: MeasureMaxEffort}, nil
	default:
		return parseSplitMeasure(s, lower, MeasureReps)
	}
}

func parseSplitMeasure(orig, lower string, typ MeasureType) (Measure, error) {
	sp, err := SplitGender(lower)
	if err != nil {
		return Measure{}, &MeasureError{Text: orig, Err: err}
	}
	m := Measure{Type: typ, Men: sp.Men, Women: sp.Women}
	switch typ {
	case MeasureDistance:
		m.Unit = sp.Unit
	case MeasureReps:
		if sp.Unit != "" {
			return Measure{}, &MeasureError{Text: orig, Err: fmt.Errorf("unexpected suffix %q", sp.Unit)}
		}
	}
	return m, nil
}

func parseDuration(orig, lower string) (Measure, error) {
	amount, unit, err := splitAmount(lower)
	if err != nil {
		return Measure{}, &MeasureError{Text: orig, Err: err}
	}
	switch unit {
	case "s", "sec", "secs":
		unit = "sec"
	case "min", "mins":
		unit = "min"
	default:
		return Measure{}, &MeasureError{Text: orig, Err: fmt.Errorf("unknown time unit %q", unit)}
	}
	return Measure{Type: MeasureDuration, Men: amount, Women: amount, Unit: unit}, nil
}

// splitAmount reads a leading digit run and returns it with the remaining
// unit letters.
func splitAmount(s string) (uint64, string, error) {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		i = len(s)
	}
	n, err := parseCount(s[:i])
	if err != nil {
		return 0, "", err
	}
	return n, s[i:], nil
}

// ParseRestPeriod matches the rest grammar: 'r', a digit run, then unit
// letters (m, min, mins, s, sec, secs). It reports false for anything else.
func ParseRestPeriod(s string) (Measure, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(lower, "r") {
		return Measure{}, false
	}
	amount, unit, err := splitAmount(lower[1:])
	if err != nil {
		return Measure{}, false
	}
	unit, ok := restUnit(unit)
	if !ok {
		return Measure{}, false
	}
	return Measure{Type: MeasureRest, Men: amount, Women: amount, Unit: unit}, true
}

func restUnit(u string) (string, bool) {
	switch u {
	case "m", "min", "mins":
		return "m", true
	case "s", "sec", "secs":
		return "s", true
	}
	return "", false
}

func plural(n uint64, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func splitString(men, women uint64) string {
	if men == women {
		return strconv.FormatUint(men, 10)
	}
	return fmt.Sprintf("%d/%d", men, women)
}

// String renders the measure the way it appears in workout prose.
func (m Measure) String() string {
	switch m.Type {
	case MeasureReps:
		return splitString(m.Men, m.Women)
	case MeasureDistance:
		return splitString(m.Men, m.Women) + m.Unit
	case MeasureCalories:
		return splitString(m.Men, m.Women) + " calories"
	case MeasureDuration:
		return fmt.Sprintf("%d %s", m.Men, m.Unit)
	case MeasureMaxEffort:
		return "Max reps of"
	case MeasureRest:
		if m.Unit == "s" {
			return "Rest " + plural(m.Men, "second")
		}
		return "Rest " + plural(m.Men, "minute")
	default:
		return ""
	}
}
