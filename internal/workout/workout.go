// Package workout assembles lexed notation into a workout record and renders
// it as markdown.
package workout

import (
	"strconv"

	"github.com/meltforce/wodlog/internal/movement"
	"github.com/meltforce/wodlog/internal/notation"
)

// Workout is the bucketed view of a token sequence. Tokens keeps the raw
// order, which the renderer needs to pair each weight with the movement it
// followed. A Workout is not modified after Assemble returns.
type Workout struct {
	Kind      notation.Kind
	Movements []movement.Movement
	Measures  []notation.Measure
	Weights   []notation.Weight
	RepMaxes  []notation.RepMax

	// Marker positions are indices into Tokens.
	SetMarkers      []int
	WeightAtMarkers []int
	SupersetMarkers []int

	Tokens   []notation.Token
	Comments string
	Name     string
}

// Assemble routes every token into exactly one bucket. It cannot fail.
func Assemble(tokens []notation.Token, comments, name string) *Workout {
	w := &Workout{Tokens: tokens, Comments: comments, Name: name}
	for i, t := range tokens {
		switch t.Type {
		case notation.TokenKind:
			w.Kind = t.Kind
		case notation.TokenMovement:
			w.Movements = append(w.Movements, t.Movement)
		case notation.TokenMeasure:
			w.Measures = append(w.Measures, t.Measure)
		case notation.TokenWeight:
			w.Weights = append(w.Weights, t.Weight)
		case notation.TokenRepMax:
			w.RepMaxes = append(w.RepMaxes, t.RepMax)
		case notation.TokenX:
			w.SetMarkers = append(w.SetMarkers, i)
		case notation.TokenAt:
			w.WeightAtMarkers = append(w.WeightAtMarkers, i)
		case notation.TokenPlus:
			w.SupersetMarkers = append(w.SupersetMarkers, i)
		}
	}
	return w
}

// DroppedWeights is the number of weights a weightlifting render leaves out.
// Only the first weight of a lifting complex is shown.
func (w *Workout) DroppedWeights() int {
	if w.Kind.Type != notation.KindWeightlifting || len(w.Weights) < 2 {
		return 0
	}
	return len(w.Weights) - 1
}

// Warnings describes information the render left out.
func (w *Workout) Warnings() []string {
	if n := w.DroppedWeights(); n > 0 {
		return []string{"only the first weight of a lifting complex is rendered; " +
			strconv.Itoa(n) + " more not shown"}
	}
	return nil
}

// MovementNames lists display names in order, without the rest placeholder.
func (w *Workout) MovementNames() []string {
	var out []string
	for _, m := range w.Movements {
		if m == movement.Rest {
			continue
		}
		out = append(out, m.String())
	}
	return out
}

// Compile tokenizes, assembles and renders one notation line.
func Compile(input, comments, name string) (string, *Workout, error) {
	tokens, err := notation.Tokenize(input)
	if err != nil {
		return "", nil, err
	}
	w := Assemble(tokens, comments, name)
	return Render(w), w, nil
}
