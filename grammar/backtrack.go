package grammar

import (
	"github.com/dekarrin/gnorm/internal/util"
)

// eliminateBacktracking left-factors the graph. This is Algorithm 4.21 from
// the purple dragon book: whenever two alternatives of a rule A begin with a
// common prefix α, every alternative of A that begins with α is replaced by a
// single one, αA', and the remainders go to a new helper rule A'.
//
//	A  -> αβ₁ | αβ₂ | ... | αβₙ | γ
//
// becomes
//
//	A  -> αA' | γ
//	A' -> β₁ | β₂ | ... | βₙ
//
// where an empty βᵢ becomes ε. The scan starts over after each factoring and
// stops once no rule has two alternatives with a common prefix.
func (g *graph) eliminateBacktracking() error {
	for extracted := 0; ; extracted++ {
		A, alpha := g.findCommonPrefix()
		if A == nil {
			tracer().Debugf("factored out %d common prefix(es)", extracted)
			return nil
		}
		if extracted >= g.maxRounds {
			return nonTerminationErrorf(A.name, "common prefixes still present after %d were factored out", g.maxRounds)
		}

		g.factor(A, alpha)
	}
}

// findCommonPrefix returns the first rule that has two alternatives with a
// common prefix, along with the longest prefix those two share.
func (g *graph) findCommonPrefix() (*node, []part) {
	for _, n := range g.live() {
		for i := range n.alts {
			for j := i + 1; j < len(n.alts); j++ {
				l := util.CommonPrefixLen(n.alts[i], n.alts[j])
				if l > 0 {
					prefix := make([]part, l)
					copy(prefix, n.alts[i][:l])
					return n, prefix
				}
			}
		}
	}
	return nil, nil
}

// factor moves every alternative of A that begins with alpha into a new
// helper rule with alpha removed, and gives A one alternative of alpha
// followed by the helper in place of the first of them.
func (g *graph) factor(A *node, alpha []part) {
	helper := g.newHelper(A.name)

	var remaining [][]part
	insertAt := -1
	for _, alt := range A.alts {
		if !util.HasPrefix(alt, alpha) {
			remaining = append(remaining, alt)
			continue
		}

		if insertAt < 0 {
			insertAt = len(remaining)
		}

		beta := make([]part, len(alt)-len(alpha))
		copy(beta, alt[len(alpha):])
		if len(beta) == 0 {
			beta = []part{epsilonPart}
		}
		helper.addAlt(beta)
	}

	factored := concat(alpha, []part{rulePart(helper.num)})
	A.alts = make([][]part, 0, len(remaining)+1)
	A.alts = append(A.alts, remaining[:insertAt]...)
	A.alts = append(A.alts, factored)
	A.alts = append(A.alts, remaining[insertAt:]...)

	tracer().Debugf("left-factored: %s ; %s", g.nodeString(A), g.nodeString(helper))
}
