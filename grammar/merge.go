package grammar

// mergeDuplicates folds together rules that have the same set of
// alternatives, without regard to their order. Of each such pair the one
// created first survives and every reference to the other is pointed at it,
// except that the start rule always survives. The rules for terminal kinds
// are never folded into the start rule, and two rules that must both survive
// are left alone. Merging can make further rules equal, so this is repeated
// until no pair remains.
func (g *graph) mergeDuplicates() {
	merged := 0
	for {
		keep, drop := g.findDuplicatePair()
		if keep == nil {
			tracer().Debugf("merged %d duplicate rule(s)", merged)
			return
		}

		tracer().Debugf("merging %s into %s", drop.name, keep.name)
		g.redirect(drop.num, keep.num)
		g.remove(drop.num)
		merged++
	}
}

func (g *graph) findDuplicatePair() (keep, drop *node) {
	live := g.live()
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			a, b := live[i], live[j]
			if !sameAlternatives(a, b) {
				continue
			}

			if !g.mustSurvive(b) {
				return a, b
			} else if !g.mustSurvive(a) {
				return b, a
			}
		}
	}
	return nil, nil
}

// mustSurvive returns whether n is the start rule or the rule for a terminal
// kind. Those are never removed by merging.
func (g *graph) mustSurvive(n *node) bool {
	return n.name == StartRule || n.num < g.termRules
}

// sameAlternatives returns whether a and b have equal sets of alternatives.
func sameAlternatives(a, b *node) bool {
	if len(a.alts) != len(b.alts) {
		return false
	}
	for _, alt := range a.alts {
		if !b.hasAlt(alt) {
			return false
		}
	}
	for _, alt := range b.alts {
		if !a.hasAlt(alt) {
			return false
		}
	}
	return true
}
