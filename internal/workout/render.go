package workout

import (
	"strings"

	"github.com/meltforce/wodlog/internal/movement"
	"github.com/meltforce/wodlog/internal/notation"
)

// Render produces the markdown section for w. The same Workout always
// renders to the same text.
func Render(w *Workout) string {
	var b strings.Builder
	b.WriteString("---\n\n")
	if w.Name != "" {
		b.WriteString("*" + w.Name + "*\n\n")
	}
	b.WriteString("**" + w.Kind.Header() + "**\n\n")

	switch w.Kind.Type {
	case notation.KindTimedRounds, notation.KindAMRAP:
		if hasSharedScheme(w.Tokens) {
			renderShared(&b, w)
		} else {
			renderWalk(&b, w.Tokens)
		}
	case notation.KindWeightlifting:
		renderLifting(&b, w)
	case notation.KindInterval:
		if clauses := w.Kind.Clauses(); len(clauses) > 0 {
			b.WriteString(strings.Join(clauses, ", ") + "\n\n")
		}
		renderWalk(&b, w.Tokens)
	}

	renderComments(&b, w.Comments)
	return b.String()
}

// hasSharedScheme reports two adjacent measure tokens, as in 21-15-9.
func hasSharedScheme(tokens []notation.Token) bool {
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].Type == notation.TokenMeasure && tokens[i].Type == notation.TokenMeasure {
			return true
		}
	}
	return false
}

// line accumulates one "- ..." bullet.
type line struct {
	b           *strings.Builder
	buf         strings.Builder
	hasMovement bool
}

func (l *line) open() {
	if l.buf.Len() == 0 {
		l.buf.WriteString("- ")
	}
}

func (l *line) flush() {
	if l.buf.Len() == 0 {
		return
	}
	l.b.WriteString(strings.TrimRight(l.buf.String(), " ") + "\n\n")
	l.buf.Reset()
	l.hasMovement = false
}

func renderShared(b *strings.Builder, w *Workout) {
	parts := make([]string, len(w.Measures))
	for i, m := range w.Measures {
		parts[i] = m.String()
	}
	b.WriteString(strings.Join(parts, "-") + "\n\n")

	l := &line{b: b}
	for _, t := range w.Tokens {
		switch t.Type {
		case notation.TokenMovement:
			l.flush()
			l.open()
			l.buf.WriteString(t.Movement.String())
			l.hasMovement = true
		case notation.TokenWeight:
			if l.hasMovement {
				l.buf.WriteString(" At " + t.Weight.String())
			}
		}
	}
	l.flush()
}

func renderWalk(b *strings.Builder, tokens []notation.Token) {
	l := &line{b: b}
	afterRest := false
	for _, t := range tokens {
		switch t.Type {
		case notation.TokenMeasure:
			if l.hasMovement {
				l.flush()
			}
			l.open()
			l.buf.WriteString(t.Measure.String() + " ")
			afterRest = t.Measure.Type == notation.MeasureRest
			continue
		case notation.TokenMovement:
			if l.hasMovement {
				l.flush()
			}
			l.open()
			if !(t.Movement == movement.Rest && afterRest) {
				l.buf.WriteString(t.Movement.String())
			}
			l.hasMovement = true
		case notation.TokenWeight:
			l.open()
			l.buf.WriteString(" At " + t.Weight.String())
		}
		afterRest = false
	}
	l.flush()
}

func renderLifting(b *strings.Builder, w *Workout) {
	var parts []string
	for _, t := range w.Tokens {
		switch t.Type {
		case notation.TokenMeasure:
			parts = append(parts, t.Measure.String())
		case notation.TokenRepMax:
			parts = append(parts, t.RepMax.String())
		}
	}

	var scheme string
	switch {
	case len(w.SupersetMarkers) == 0:
		scheme = strings.Join(parts, "x")
	case len(w.SetMarkers) == 0:
		scheme = strings.Join(parts, "+")
	default:
		scheme = parts[0] + "x(" + strings.Join(parts[1:], "+") + ")"
	}

	names := make([]string, len(w.Movements))
	for i, m := range w.Movements {
		names[i] = m.String()
	}

	var out strings.Builder
	out.WriteString(scheme)
	if len(names) > 0 {
		if scheme != "" {
			out.WriteString(" ")
		}
		out.WriteString(strings.Join(names, " + "))
	}
	if len(w.Weights) > 0 {
		out.WriteString(" @ " + w.Weights[0].String())
	}
	b.WriteString(strings.TrimSpace(out.String()) + "\n\n")
}

func renderComments(b *strings.Builder, comments string) {
	wrote := false
	for _, ln := range strings.Split(comments, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		b.WriteString("*" + ln + "*\n")
		wrote = true
	}
	if wrote {
		b.WriteString("\n")
	}
}
