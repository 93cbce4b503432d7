// Package notation turns a workout notation line into an ordered token
// sequence. It holds the leaf parsers for measures, weights, rep maxes and
// workout kinds, plus the lexer that drives them.
package notation

import (
	"fmt"

	"github.com/meltforce/wodlog/internal/movement"
)

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenKind     TokenType = iota + 1 // ft, 5rd, amrap-12, emom-10-r1m, wl
	TokenMeasure                       // 21, 400m, 15cal, 30sec, max, r1m
	TokenMovement                      // pull up
	TokenX                             // x in 5x5
	TokenAt                            // @
	TokenPlus                          // + in 1+1
	TokenRepMax                        // 1rm
	TokenWeight                        // 43/30kg
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenKind:
		return "KIND"
	case TokenMeasure:
		return "MEASURE"
	case TokenMovement:
		return "MOVEMENT"
	case TokenX:
		return "X"
	case TokenAt:
		return "AT"
	case TokenPlus:
		return "PLUS"
	case TokenRepMax:
		return "REPMAX"
	case TokenWeight:
		return "WEIGHT"
	default:
		return fmt.Sprintf("TokenType(%d)", uint8(t))
	}
}

// Token is one lexical unit. Only the payload field matching Type is set.
type Token struct {
	Type     TokenType
	Kind     Kind
	Measure  Measure
	Movement movement.Movement
	RepMax   RepMax
	Weight   Weight
}

// String is a debug form, used in API responses that echo tokens back.
func (t Token) String() string {
	switch t.Type {
	case TokenKind:
		return fmt.Sprintf("KIND(%s)", t.Kind.Header())
	case TokenMeasure:
		return fmt.Sprintf("MEASURE(%s)", t.Measure)
	case TokenMovement:
		return fmt.Sprintf("MOVEMENT(%s)", t.Movement)
	case TokenRepMax:
		return fmt.Sprintf("REPMAX(%s)", t.RepMax)
	case TokenWeight:
		return fmt.Sprintf("WEIGHT(%s)", t.Weight)
	default:
		return t.Type.String()
	}
}

func kindToken(k Kind) Token                  { return Token{Type: TokenKind, Kind: k} }
func measureToken(m Measure) Token            { return Token{Type: TokenMeasure, Measure: m} }
func movementToken(m movement.Movement) Token { return Token{Type: TokenMovement, Movement: m} }
func weightToken(w Weight) Token              { return Token{Type: TokenWeight, Weight: w} }
func repMaxToken(r RepMax) Token              { return Token{Type: TokenRepMax, RepMax: r} }
