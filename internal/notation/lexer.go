package notation

import (
	"strings"
	"unicode"

	"github.com/meltforce/wodlog/internal/movement"
)

// numericRun lists the non-digit characters a digit-initiated run may
// contain. It covers every measure, weight and rep-max suffix.
const numericRun = "-+()x/kg%rmilecasnb"

type lexer struct {
	input  string
	src    []rune
	pos    int
	tokens []Token
}

// Tokenize scans a notation line into tokens. The first whitespace-delimited
// word is always the workout kind. Any sub-parser failure aborts the scan
// with a *LexError and no tokens.
func Tokenize(input string) ([]Token, error) {
	l := &lexer{input: input, src: []rune(input)}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) emit(t Token) { l.tokens = append(l.tokens, t) }

func (l *lexer) fail(start int, err error) error {
	return &LexError{Input: l.input, Offset: start, Err: err}
}

func (l *lexer) skipSpace() {
	for r, ok := l.peek(); ok && unicode.IsSpace(r); r, ok = l.peek() {
		l.pos++
	}
}

// capture advances while keep accepts the current rune and returns the run.
func (l *lexer) capture(keep func(rune) bool) string {
	start := l.pos
	for r, ok := l.peek(); ok && keep(r); r, ok = l.peek() {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

func (l *lexer) run() error {
	l.skipSpace()
	start := l.pos
	word := l.capture(func(r rune) bool { return !unicode.IsSpace(r) })
	if word == "" {
		return l.fail(start, &KindError{Text: word})
	}
	k, err := ParseKind(word)
	if err != nil {
		return l.fail(start, err)
	}
	l.emit(kindToken(k))

	for {
		l.skipSpace()
		r, ok := l.peek()
		if !ok {
			return nil
		}
		start := l.pos
		switch {
		case r == '@':
			l.pos++
			l.emit(Token{Type: TokenAt})
		case unicode.IsDigit(r):
			run := l.capture(func(r rune) bool {
				return unicode.IsDigit(r) || strings.ContainsRune(numericRun, unicode.ToLower(r))
			})
			if err := l.numeric(strings.ToLower(run)); err != nil {
				return l.fail(start, err)
			}
		case unicode.IsLetter(r):
			run := l.capture(func(r rune) bool {
				return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-'
			})
			if err := l.word(strings.TrimSpace(run)); err != nil {
				return l.fail(start, err)
			}
		default:
			l.pos++
		}
	}
}

// numeric classifies a digit-initiated run.
func (l *lexer) numeric(run string) error {
	switch {
	case strings.ContainsAny(run, "x+("):
		return l.scheme(run)
	case strings.Contains(run, "kg"), strings.Contains(run, "lb"), strings.Contains(run, "%"):
		w, err := ParseWeight(run)
		if err != nil {
			return err
		}
		l.emit(weightToken(w))
	case strings.Contains(run, "rm"):
		rm, err := ParseRepMax(run)
		if err != nil {
			return err
		}
		l.emit(repMaxToken(rm))
	case strings.IndexFunc(run, unicode.IsLetter) >= 0:
		m, err := ParseMeasure(run)
		if err != nil {
			return err
		}
		l.emit(measureToken(m))
	default:
		for _, seg := range strings.Split(run, "-") {
			if seg == "" {
				continue
			}
			m, err := ParseMeasure(seg)
			if err != nil {
				return err
			}
			l.emit(measureToken(m))
		}
	}
	return nil
}

type schemeState uint8

const (
	accumulating schemeState = iota
	afterSeparator
)

// scheme re-scans a set/rep scheme such as 5x5, 1+1+1 or 3x(1+1+1),
// emitting a measure for every number between separators.
func (l *lexer) scheme(run string) error {
	var buf strings.Builder
	state := afterSeparator

	flush := func() error {
		if state != accumulating {
			return nil
		}
		text := buf.String()
		buf.Reset()
		state = afterSeparator
		if strings.Contains(text, "rm") {
			rm, err := ParseRepMax(text)
			if err != nil {
				return err
			}
			l.emit(repMaxToken(rm))
			return nil
		}
		m, err := ParseMeasure(text)
		if err != nil {
			return err
		}
		l.emit(measureToken(m))
		return nil
	}

	for _, r := range run {
		switch r {
		case 'x', '+':
			if err := flush(); err != nil {
				return err
			}
			if r == 'x' {
				l.emit(Token{Type: TokenX})
			} else {
				l.emit(Token{Type: TokenPlus})
			}
		case '(', ')':
			if err := flush(); err != nil {
				return err
			}
		default:
			buf.WriteRune(r)
			state = accumulating
		}
	}
	return flush()
}

// word handles a letter-initiated run: an optional max keyword, then either
// a rest period or a movement name.
func (l *lexer) word(run string) error {
	text := run
	lower := strings.ToLower(run)
	if lower == "max" || strings.HasPrefix(lower, "max ") {
		l.emit(measureToken(Measure{Type: MeasureMaxEffort}))
		text = strings.TrimSpace(run[len("max"):])
		if text == "" {
			return nil
		}
	}
	if m, ok := ParseRestPeriod(text); ok {
		l.emit(measureToken(m))
		l.emit(movementToken(movement.Rest))
		return nil
	}
	mv, err := movement.Resolve(text)
	if err != nil {
		return err
	}
	l.emit(movementToken(mv))
	return nil
}
