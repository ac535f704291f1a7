package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gnorm/internal/util"
	"github.com/dekarrin/gnorm/terminal"
)

var epsilonSymbol = Symbol{term: terminal.Epsilon}

// Conflict is a pair of alternatives of one rule that cannot be told apart
// by looking at the next terminal of input.
type Conflict struct {
	// Rule is the rule the alternatives are in.
	Rule *Rule

	// Alts are the 0-indexed positions of the two alternatives.
	Alts [2]int

	// Shared is every terminal that both alternatives can start with.
	Shared []Symbol
}

// String shows both alternatives along with the terminals they share.
func (c Conflict) String() string {
	shared := make([]string, len(c.Shared))
	for i := range c.Shared {
		shared[i] = c.Shared[i].String()
	}
	return fmt.Sprintf("%s: %q and %q both start with {%s}",
		c.Rule.name,
		altString(c.Rule.alts[c.Alts[0]]),
		altString(c.Rule.alts[c.Alts[1]]),
		strings.Join(shared, ", "),
	)
}

// IsBacktrackFree returns whether no rule in rules has two alternatives with
// the same start set. The start set of an alternative is FIRST of its leading
// symbol, or, if that symbol can derive ε, the same without ε and with FOLLOW
// of the rule added. An empty alternative has FOLLOW of the rule as its start
// set.
//
// This only reads the rules and can be given any set of them, whether or not
// they came out of Normalize.
func IsBacktrackFree(rules []*Rule) bool {
	return len(BacktrackConflicts(rules)) == 0
}

// BacktrackConflicts returns every pair of alternatives in rules that have
// the same start set. See IsBacktrackFree.
func BacktrackConflicts(rules []*Rule) []Conflict {
	return findConflicts(rules, func(s1, s2 util.KeySet[Symbol]) bool {
		return s1.Equal(s2)
	})
}

// LL1Conflicts returns every pair of alternatives in rules whose start sets
// have any terminal in common. This is a stricter test than
// BacktrackConflicts; a grammar with no LL(1) conflicts can always be parsed
// by picking an alternative from the next terminal alone.
func LL1Conflicts(rules []*Rule) []Conflict {
	return findConflicts(rules, func(s1, s2 util.KeySet[Symbol]) bool {
		return !s1.DisjointWith(s2)
	})
}

func findConflicts(rules []*Rule, conflicting func(s1, s2 util.KeySet[Symbol]) bool) []Conflict {
	var conflicts []Conflict

	for _, r := range rules {
		if r == nil {
			continue
		}

		starts := make([]util.KeySet[Symbol], len(r.alts))
		for i := range r.alts {
			starts[i] = startSet(r, r.alts[i])
		}

		for i := range starts {
			for j := i + 1; j < len(starts); j++ {
				if conflicting(starts[i], starts[j]) {
					conflicts = append(conflicts, Conflict{
						Rule:   r,
						Alts:   [2]int{i, j},
						Shared: sortedSymbols(starts[i].Intersection(starts[j])),
					})
				}
			}
		}
	}

	return conflicts
}

// startSet returns the terminals that can begin alt when it is chosen for r.
func startSet(r *Rule, alt []Symbol) util.KeySet[Symbol] {
	if len(alt) == 0 {
		return r.follow.Copy()
	}

	first := alt[0].firstSet()
	if !first.Has(epsilonSymbol) {
		return first.Copy()
	}
	return first.Without(epsilonSymbol).Union(r.follow)
}
