package grammar

// MaxRounds bounds how many full passes left-recursion elimination and left
// expansion may make over a grammar, and how many common prefixes
// backtracking elimination may factor out. Going past it means the grammar is
// most likely pathological, such as being mutually recursive with no base
// case.
const MaxRounds = 1024

// eliminateLeftRecursion removes all left recursion from the graph, both
// immediate and indirect. This is Algorithm 4.19 from the purple dragon book,
// using the creation order of rules as the ordering A₁, A₂, ..., Aₙ and
// repeated until nothing changes, since new helper rules are ordered after
// all the others.
func (g *graph) eliminateLeftRecursion() error {
	for round := 1; ; round++ {
		if round > g.maxRounds {
			return nonTerminationErrorf("", "left recursion still present after %d rounds of elimination", g.maxRounds)
		}

		changed, err := g.leftRecursionRound()
		if err != nil {
			return err
		}
		if !changed {
			tracer().Debugf("left recursion eliminated after %d round(s)", round)
			return nil
		}
	}
}

func (g *graph) leftRecursionRound() (changed bool, err error) {
	// helpers made during this round are not visited until the next one
	count := len(g.nodes)

	for i := 1; i < count; i++ {
		Ai := g.nodes[i]
		if Ai.deleted {
			continue
		}

		for j := 0; j < i; j++ {
			Aj := g.nodes[j]
			if Aj.deleted {
				continue
			}

			for subs := 0; ; subs++ {
				k := leadingRef(Ai, j)
				if k < 0 {
					break
				}
				if subs >= g.maxRounds {
					return false, nonTerminationErrorf(Ai.name, "could not finish substituting leading references to %q", Aj.name)
				}

				// replace Aᵢ -> Aⱼγ with Aᵢ -> δ₁γ | δ₂γ | ... | δₖγ where
				// Aⱼ -> δ₁ | δ₂ | ... | δₖ
				gamma := Ai.alts[k][1:]
				deltas := make([][]part, 0, len(Aj.alts))
				for _, delta := range Aj.alts {
					deltas = append(deltas, concat(delta, gamma))
				}
				Ai.replaceAlt(k, deltas)
				changed = true
			}
		}

		// now for the immediate left recursion. split Aᵢ into
		// Aᵢ -> Aᵢα₁ | Aᵢα₂ | ... | Aᵢαₘ | β₁ | β₂ | ... | βₙ
		var alphas, betas [][]part
		dropped := false
		self := rulePart(i)
		for _, alt := range Ai.alts {
			if len(alt) > 0 && alt[0] == self {
				if len(alt) == 1 {
					// Aᵢ -> Aᵢ derives nothing new
					dropped = true
					continue
				}
				alphas = append(alphas, alt[1:])
			} else {
				betas = append(betas, alt)
			}
		}

		if len(alphas) == 0 && !dropped {
			continue
		}
		if len(betas) == 0 {
			return false, structureErrorf(Ai.name, "every alternative begins with a reference to the rule itself, so it can never derive a string of terminals")
		}
		changed = true
		if len(alphas) == 0 {
			tracer().Debugf("%s: dropped alternative that only refers to itself", Ai.name)
			Ai.alts = betas
			continue
		}

		// Aᵢ  -> β₁Aᵢ' | β₂Aᵢ' | ... | βₙAᵢ'
		// Aᵢ' -> α₁Aᵢ' | α₂Aᵢ' | ... | αₘAᵢ' | ε
		helper := g.newHelper(Ai.name)
		helperRef := []part{rulePart(helper.num)}

		Ai.alts = nil
		for _, beta := range betas {
			Ai.addAlt(concat(beta, helperRef))
		}
		for _, alpha := range alphas {
			helper.addAlt(concat(alpha, helperRef))
		}
		helper.addAlt([]part{epsilonPart})

		tracer().Debugf("removed immediate left recursion: %s ; %s", g.nodeString(Ai), g.nodeString(helper))
	}

	return changed, nil
}

// leadingRef returns the index of the first alternative of n that begins with
// a reference to the node at idx, or -1 if there is none.
func leadingRef(n *node, idx int) int {
	ref := rulePart(idx)
	for k, alt := range n.alts {
		if len(alt) > 0 && alt[0] == ref {
			return k
		}
	}
	return -1
}
