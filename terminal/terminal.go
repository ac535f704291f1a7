// Package terminal holds the closed alphabet of terminal kinds that grammars
// are written over. Each kind optionally has a literal spelling, which is how
// it is written directly in grammar text; kinds without a literal are written
// by their rule name (the upper-cased kind name, such as "ID" or "INT").
package terminal

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is a kind of terminal. The zero value is not a valid Kind.
type Kind int

const (
	Fn Kind = iota + 1
	Colon

	LParen
	RParen
	LBracket
	RBracket
	LCurly
	RCurly

	Int
	Str
	Id

	Return
	Semicolon
	Comma
	Equal
	Slash
	Star
	Minus
	Plus

	// Eof marks the end of input. It is only ever found in FOLLOW sets.
	Eof

	// Epsilon stands for the empty string. It is never a real input token.
	Epsilon

	// Error is produced by scanners on bad input and never appears in a rule.
	Error
)

var kindNames = map[Kind]string{
	Fn:        "Fn",
	Colon:     "Colon",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	LCurly:    "LCurly",
	RCurly:    "RCurly",
	Int:       "Int",
	Str:       "Str",
	Id:        "Id",
	Return:    "Return",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Equal:     "Equal",
	Slash:     "Slash",
	Star:      "Star",
	Minus:     "Minus",
	Plus:      "Plus",
	Eof:       "Eof",
	Epsilon:   "Epsilon",
	Error:     "Error",
}

var literals = map[Kind]string{
	Fn:        "fn",
	Colon:     ":",
	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	LCurly:    "{",
	RCurly:    "}",
	Return:    "return",
	Semicolon: ";",
	Comma:     ",",
	Equal:     "=",
	Slash:     "/",
	Star:      "*",
	Minus:     "-",
	Plus:      "+",
}

var byLiteral map[string]Kind

func init() {
	byLiteral = make(map[string]Kind, len(literals))
	for k, lit := range literals {
		byLiteral[lit] = k
	}
}

var upper = cases.Upper(language.Und)

// All returns every Kind in declaration order.
func All() []Kind {
	all := make([]Kind, 0, len(kindNames))
	for k := Fn; k <= Error; k++ {
		all = append(all, k)
	}
	return all
}

// Valid returns whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= Fn && k <= Error
}

// String returns the name of the kind, e.g. "LParen".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// RuleName returns the name of the grammar rule that stands for k, which is
// its name in upper case.
func (k Kind) RuleName() string {
	return upper.String(k.String())
}

// Literal returns the literal spelling of k. If k has none, ok will be false.
func (k Kind) Literal() (lit string, ok bool) {
	lit, ok = literals[k]
	return lit, ok
}

// IsKeyword returns whether k has a literal spelling.
func (k Kind) IsKeyword() bool {
	_, ok := literals[k]
	return ok
}

// Repr returns how k is shown in rendered grammars: its literal if it has
// one, otherwise its name.
func (k Kind) Repr() string {
	if lit, ok := literals[k]; ok {
		return lit
	}
	return k.String()
}

// InRules returns whether terminals of kind k are given a rule of their own
// in every grammar. Eof, Epsilon, and Error are not.
func (k Kind) InRules() bool {
	return k.Valid() && k != Eof && k != Epsilon && k != Error
}

// FromLiteral returns the Kind whose literal spelling is s.
func FromLiteral(s string) (Kind, bool) {
	k, ok := byLiteral[s]
	return k, ok
}

// FromLiteralOrEpsilon is like FromLiteral but also maps the empty string to
// Epsilon.
func FromLiteralOrEpsilon(s string) (Kind, bool) {
	if s == "" {
		return Epsilon, true
	}
	return FromLiteral(s)
}
