package grammar

import (
	"fmt"

	"github.com/dekarrin/gnorm/internal/util"
	"github.com/dekarrin/gnorm/terminal"
)

// Symbol is one element of an alternative. It is either a terminal of some
// terminal.Kind or a reference to a Rule, and is created with TermSymbol or
// RuleSymbol. The zero value is not a valid Symbol.
//
// Symbols are comparable. Two terminal symbols are equal when they are of the
// same kind; two rule symbols are equal only when they refer to the very same
// Rule, regardless of what that Rule contains.
type Symbol struct {
	term terminal.Kind
	rule *Rule
}

// TermSymbol returns a Symbol for a terminal of kind k. It panics if k is not
// a valid kind.
func TermSymbol(k terminal.Kind) Symbol {
	if !k.Valid() {
		panic(fmt.Sprintf("not a valid terminal kind: %v", k))
	}
	return Symbol{term: k}
}

// RuleSymbol returns a Symbol that refers to r. It panics if r is nil.
func RuleSymbol(r *Rule) Symbol {
	if r == nil {
		panic("rule symbol requires a non-nil rule")
	}
	return Symbol{rule: r}
}

// IsTerminal returns whether s is a terminal.
func (s Symbol) IsTerminal() bool {
	return s.rule == nil
}

// IsEpsilon returns whether s is the Epsilon terminal.
func (s Symbol) IsEpsilon() bool {
	return s.rule == nil && s.term == terminal.Epsilon
}

// Terminal returns the kind of terminal s is. If s refers to a rule, the
// returned Kind is not valid.
func (s Symbol) Terminal() terminal.Kind {
	return s.term
}

// Rule returns the rule s refers to, or nil if s is a terminal.
func (s Symbol) Rule() *Rule {
	return s.rule
}

// First returns FIRST(s). For a terminal this is just s itself; for a rule it
// is the FIRST set of that rule.
func (s Symbol) First() []Symbol {
	if s.IsTerminal() {
		return []Symbol{s}
	}
	return s.rule.First()
}

func (s Symbol) firstSet() util.KeySet[Symbol] {
	if s.IsTerminal() {
		return util.KeySetOf([]Symbol{s})
	}
	return s.rule.first
}

// String returns the name of the rule s refers to, or for a terminal its
// literal spelling if it has one and its kind name otherwise. Epsilon is shown
// as "ε" and Eof as "$".
func (s Symbol) String() string {
	if !s.IsTerminal() {
		return s.rule.name
	}
	return termRepr(s.term)
}

func termRepr(k terminal.Kind) string {
	switch k {
	case terminal.Epsilon:
		return "ε"
	case terminal.Eof:
		return "$"
	default:
		return k.Repr()
	}
}

// symbolLess orders terminals before rules, terminals by kind and rules by
// their creation number.
func symbolLess(l, r Symbol) bool {
	if l.IsTerminal() != r.IsTerminal() {
		return l.IsTerminal()
	}
	if l.IsTerminal() {
		return l.term < r.term
	}
	return l.rule.num < r.rule.num
}

func sortedSymbols(s util.KeySet[Symbol]) []Symbol {
	return s.SortedElements(symbolLess)
}
