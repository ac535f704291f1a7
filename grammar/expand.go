package grammar

// expandLeft replaces every alternative that begins with a reference to a
// rule with the alternatives of that rule followed by the rest of it, until
// every alternative of every rule begins with a terminal (or is empty). Only
// then can common prefixes be found by comparing symbols.
//
// This only reaches a fixed point on a graph that has no left recursion, so
// it must be run after eliminateLeftRecursion. Left recursion that is hidden
// behind a rule that can derive the empty string is not found by that pass;
// it shows up here as an alternative that begins with its own rule, and that
// is an error.
func (g *graph) expandLeft() error {
	for round := 1; ; round++ {
		changed := false

		for _, n := range g.live() {
			for i := 0; i < len(n.alts); i++ {
				alt := n.alts[i]
				if len(alt) == 0 || alt[0].isTerm() {
					continue
				}

				lead := g.nodes[alt[0].node]
				if lead == n {
					return nonTerminationErrorf(n.name, "alternative %q is left recursive through a rule that derives ε, so left expansion cannot finish", g.altString(alt))
				}

				expanded := make([][]part, 0, len(lead.alts))
				for _, delta := range lead.alts {
					expanded = append(expanded, concat(delta, alt[1:]))
				}

				before := len(n.alts)
				n.replaceAlt(i, expanded)
				i += len(n.alts) - before
				changed = true
			}
		}

		if !changed {
			tracer().Debugf("left expansion finished after %d round(s)", round)
			return nil
		}
		if round >= g.maxRounds {
			return nonTerminationErrorf("", "alternatives still begin with rule references after %d rounds of left expansion; the grammar may have left recursion through a rule that derives ε", g.maxRounds)
		}
	}
}
