package grammar

import (
	"strings"

	"github.com/dekarrin/gnorm/internal/util"
)

// Rule is a single named rule of a normalized Grammar along with its FIRST
// and FOLLOW sets. A Rule is never modified once it has been returned from
// this package; every accessor that returns a slice returns a copy.
type Rule struct {
	name   string
	num    int
	alts   [][]Symbol
	first  util.KeySet[Symbol]
	follow util.KeySet[Symbol]
}

// Name returns the name of the rule.
func (r *Rule) Name() string {
	return r.name
}

// Num returns the creation number of the rule. Rules parsed from text are
// numbered in the order they were first seen, after the rules for terminals;
// helper rules are numbered as they are created.
func (r *Rule) Num() int {
	return r.num
}

// Alternatives returns the alternatives of the rule in order. An alternative
// is never shared with the Rule.
func (r *Rule) Alternatives() [][]Symbol {
	alts := make([][]Symbol, len(r.alts))
	for i := range r.alts {
		alts[i] = make([]Symbol, len(r.alts[i]))
		copy(alts[i], r.alts[i])
	}
	return alts
}

// Len returns the number of alternatives.
func (r *Rule) Len() int {
	return len(r.alts)
}

// First returns the FIRST set of the rule, ordered.
func (r *Rule) First() []Symbol {
	return sortedSymbols(r.first)
}

// Follow returns the FOLLOW set of the rule, ordered.
func (r *Rule) Follow() []Symbol {
	return sortedSymbols(r.follow)
}

// HasFirst returns whether s is in FIRST of the rule.
func (r *Rule) HasFirst(s Symbol) bool {
	return r.first.Has(s)
}

// HasFollow returns whether s is in FOLLOW of the rule.
func (r *Rule) HasFollow(s Symbol) bool {
	return r.follow.Has(s)
}

// IsTerminal returns whether the rule just stands for one terminal, i.e. it
// has exactly one alternative made of exactly one terminal symbol.
func (r *Rule) IsTerminal() bool {
	return len(r.alts) == 1 && len(r.alts[0]) == 1 && r.alts[0][0].IsTerminal()
}

// Nullable returns whether the rule can derive the empty string.
func (r *Rule) Nullable() bool {
	return r.first.Any(Symbol.IsEpsilon)
}

// String shows the rule in the same form it is written in grammar text.
func (r *Rule) String() string {
	return r.name + " -> " + r.AltsString()
}

// AltsString shows the alternatives of the rule separated by " | ".
func (r *Rule) AltsString() string {
	alts := make([]string, len(r.alts))
	for i := range r.alts {
		alts[i] = altString(r.alts[i])
	}
	return strings.Join(alts, " | ")
}

func altString(alt []Symbol) string {
	if len(alt) == 0 {
		return "ε"
	}
	syms := make([]string, len(alt))
	for i := range alt {
		syms[i] = alt[i].String()
	}
	return strings.Join(syms, " ")
}
