package notation

import (
	"fmt"
	"strings"
	"unicode"
)

// KindType tags the four workout kinds.
type KindType uint8

const (
	KindTimedRounds KindType = iota + 1
	KindAMRAP
	KindInterval
	KindWeightlifting
)

func (t KindType) String() string {
	switch t {
	case KindTimedRounds:
		return "for_time"
	case KindAMRAP:
		return "amrap"
	case KindInterval:
		return "emom"
	case KindWeightlifting:
		return "weightlifting"
	default:
		return fmt.Sprintf("KindType(%d)", uint8(t))
	}
}

// Span is an interval sub-clause: a work period or a rest period.
type Span struct {
	Amount uint64
	Unit   string
	IsRest bool
}

// IsDefaultEvery reports whether s is the implicit one-minute work period.
func (s Span) IsDefaultEvery() bool {
	return s.Amount == 1 && (s.Unit == "" || s.Unit == "m" || s.Unit == "min")
}

func (s Span) seconds() bool {
	switch s.Unit {
	case "s", "sec", "secs":
		return true
	}
	return false
}

func (s Span) String() string {
	word := "minute"
	if s.seconds() {
		word = "second"
	}
	if s.IsRest {
		return "rest " + plural(s.Amount, word)
	}
	return "work every " + plural(s.Amount, word)
}

// Kind is the parsed workout header. Which fields are meaningful depends on
// Type: Rounds and Label for timed rounds, Minutes for AMRAP, Rounds, Every,
// Rest and Alternating for intervals.
type Kind struct {
	Type        KindType
	Rounds      uint64
	Label       string
	Minutes     uint64
	Every       Span
	Rest        Span
	Alternating bool
}

// Header is the bolded title line of a rendered workout.
func (k Kind) Header() string {
	switch k.Type {
	case KindTimedRounds:
		if k.Rounds > 1 {
			return fmt.Sprintf("%d rounds for time", k.Rounds)
		}
		return "For Time"
	case KindAMRAP:
		return fmt.Sprintf("AMRAP %d minutes", k.Minutes)
	case KindInterval:
		return fmt.Sprintf("EMOM %d minutes", k.Rounds)
	case KindWeightlifting:
		return "Weightlifting"
	default:
		return ""
	}
}

// Clauses lists the interval sub-clauses that differ from the defaults.
func (k Kind) Clauses() []string {
	if k.Type != KindInterval {
		return nil
	}
	var out []string
	if !k.Every.IsDefaultEvery() {
		out = append(out, k.Every.String())
	}
	if k.Rest.Amount > 0 {
		out = append(out, k.Rest.String())
	}
	if k.Alternating {
		out = append(out, "alternating")
	}
	return out
}

// ParseKind parses the first word of a notation line.
func ParseKind(s string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(lower, "amrap"):
		return parseAMRAP(s, lower)
	case strings.HasPrefix(lower, "emom"):
		return parseInterval(s, lower)
	case lower == "wl":
		return Kind{Type: KindWeightlifting}, nil
	case lower == "ft" || strings.Contains(lower, "rd"):
		return parseTimedRounds(s, lower)
	default:
		return Kind{}, &KindError{Text: s}
	}
}

func parseAMRAP(orig, lower string) (Kind, error) {
	k := Kind{Type: KindAMRAP, Minutes: 1}
	parts := strings.Split(lower, "-")
	if len(parts) > 1 && parts[1] != "" {
		n, err := parseCount(parts[1])
		if err != nil {
			return Kind{}, &KindError{Text: orig, Err: err}
		}
		k.Minutes = n
	}
	return k, nil
}

func parseInterval(orig, lower string) (Kind, error) {
	k := Kind{
		Type:   KindInterval,
		Rounds: 1,
		Every:  Span{Amount: 1, Unit: "m"},
		Rest:   Span{IsRest: true, Unit: "m"},
	}
	for i, part := range strings.Split(lower, "-") {
		switch {
		case i == 0 || part == "":
		case part == "alt":
			k.Alternating = true
		case strings.HasPrefix(part, "r"):
			sp, err := parseSpan(part[1:])
			if err != nil {
				return Kind{}, &KindError{Text: orig, Err: err}
			}
			sp.IsRest = true
			k.Rest = sp
		case i == 1:
			n, err := parseCount(part)
			if err != nil {
				return Kind{}, &KindError{Text: orig, Err: err}
			}
			k.Rounds = n
		case i == 2:
			sp, err := parseSpan(part)
			if err != nil {
				return Kind{}, &KindError{Text: orig, Err: err}
			}
			k.Every = sp
		}
	}
	return k, nil
}

func parseSpan(s string) (Span, error) {
	amount, unit, err := splitAmount(s)
	if err != nil {
		return Span{}, err
	}
	switch unit {
	case "", "m", "min", "mins", "s", "sec", "secs":
	default:
		return Span{}, fmt.Errorf("unknown time unit %q", unit)
	}
	return Span{Amount: amount, Unit: unit}, nil
}

func parseTimedRounds(orig, lower string) (Kind, error) {
	i := strings.IndexFunc(lower, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		i = len(lower)
	}
	k := Kind{Type: KindTimedRounds, Rounds: 1, Label: lower[i:]}
	if i > 0 {
		n, err := parseCount(lower[:i])
		if err != nil {
			return Kind{}, &KindError{Text: orig, Err: err}
		}
		k.Rounds = n
	}
	return k, nil
}
