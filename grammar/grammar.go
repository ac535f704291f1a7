package grammar

import (
	"fmt"
	"strings"
)

// StartRule is the name of the rule that every grammar is derived from.
const StartRule = "start"

// Grammar is a normalized grammar: its rules in creation order, each with
// frozen alternatives and FIRST and FOLLOW sets. The zero value is an empty
// Grammar with no rules.
//
// A Grammar is immutable and safe for concurrent use.
type Grammar struct {
	rules  []*Rule
	byName map[string]*Rule
}

// Rules returns every rule of the grammar in creation order. This includes
// the rules for terminal kinds.
func (g Grammar) Rules() []*Rule {
	rules := make([]*Rule, len(g.rules))
	copy(rules, g.rules)
	return rules
}

// Rule returns the rule with the given name, or nil if there is none.
func (g Grammar) Rule(name string) *Rule {
	return g.byName[name]
}

// Start returns the start rule of the grammar.
func (g Grammar) Start() *Rule {
	return g.byName[StartRule]
}

// Len returns the number of rules in the grammar.
func (g Grammar) Len() int {
	return len(g.rules)
}

// NonTerminals returns the rules of the grammar that do not just stand for a
// single terminal, in creation order.
func (g Grammar) NonTerminals() []*Rule {
	var nts []*Rule
	for _, r := range g.rules {
		if !r.IsTerminal() {
			nts = append(nts, r)
		}
	}
	return nts
}

// Defined returns every rule of g except the ones registered for terminal
// kinds, in creation order. Unlike NonTerminals, a written rule whose only
// alternative is a single terminal is included.
func (g Grammar) Defined() []*Rule {
	var defined []*Rule
	for _, r := range g.rules {
		if !r.IsTerminal() || r.alts[0][0].term.RuleName() != r.name {
			defined = append(defined, r)
		}
	}
	return defined
}

// IsBacktrackFree returns whether the rules of g are free of backtracking
// conflicts. See the function IsBacktrackFree.
func (g Grammar) IsBacktrackFree() bool {
	return IsBacktrackFree(g.rules)
}

// Validate checks that g holds to the structure every normalized grammar must
// have. See the function Validate.
func (g Grammar) Validate() error {
	return Validate(g.rules)
}

// String shows every rule of the grammar on its own line.
func (g Grammar) String() string {
	var sb strings.Builder

	width := 0
	for _, r := range g.rules {
		if len(r.name) > width {
			width = len(r.name)
		}
	}

	for i, r := range g.rules {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(fmt.Sprintf("%-*s -> %s", width, r.name, r.AltsString()))
	}

	return sb.String()
}

func newGrammar(rules []*Rule) Grammar {
	g := Grammar{
		rules:  rules,
		byName: make(map[string]*Rule, len(rules)),
	}
	for _, r := range rules {
		g.byName[r.name] = r
	}
	return g
}
