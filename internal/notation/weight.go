package notation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Weight is a load, optionally split by gender. Kilograms and pounds are
// stored as written and never converted.
type Weight struct {
	Men   uint64
	Women uint64
	Unit  string
}

// ParseWeight parses "80kg", "43/30kg", "135lb" or "85%".
func ParseWeight(s string) (Weight, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	sp, err := SplitGender(lower)
	if err != nil {
		return Weight{}, &WeightError{Text: s, Err: err}
	}
	switch sp.Unit {
	case "kg", "%":
	case "lb", "lbs":
		sp.Unit = "lb"
	default:
		return Weight{}, &WeightError{Text: s, Err: fmt.Errorf("unknown unit %q", sp.Unit)}
	}
	return Weight{Men: sp.Men, Women: sp.Women, Unit: sp.Unit}, nil
}

func (w Weight) String() string {
	return splitString(w.Men, w.Women) + w.Unit
}

// RepMax is the heaviest load for Count repetitions, as in "1rm".
type RepMax struct {
	Count uint64
}

// ParseRepMax keeps only the digits of s.
func ParseRepMax(s string) (RepMax, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return RepMax{}, &RepMaxError{Text: s}
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return RepMax{}, &RepMaxError{Text: s}
	}
	return RepMax{Count: n}, nil
}

func (r RepMax) String() string {
	return fmt.Sprintf("%dRM", r.Count)
}
