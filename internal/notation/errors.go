package notation

import "fmt"

// KindError reports workout-type text that matches no known kind.
type KindError struct {
	Text string
	Err  error
}

func (e *KindError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid workout type: `%s`: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("invalid workout type: `%s`", e.Text)
}

func (e *KindError) Unwrap() error { return e.Err }

// MeasureError reports malformed reps, distance, calories or time.
type MeasureError struct {
	Text string
	Err  error
}

func (e *MeasureError) Error() string {
	return fmt.Sprintf("invalid measure: `%s`: %v", e.Text, e.Err)
}

func (e *MeasureError) Unwrap() error { return e.Err }

// WeightError reports a malformed weight.
type WeightError struct {
	Text string
	Err  error
}

func (e *WeightError) Error() string {
	return fmt.Sprintf("invalid weight: `%s`: %v", e.Text, e.Err)
}

func (e *WeightError) Unwrap() error { return e.Err }

// RepMaxError reports a rep-max marker with no count.
type RepMaxError struct {
	Text string
}

func (e *RepMaxError) Error() string {
	return fmt.Sprintf("invalid rep max: `%s`", e.Text)
}

// LexError wraps the first sub-parser failure hit while tokenizing. Offset
// is the rune index where the offending run starts.
type LexError struct {
	Input  string
	Offset int
	Err    error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("tokenizing %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

func (e *LexError) Unwrap() error { return e.Err }
