package grammar

// MaxNullablePositions is the most references to a single nullable rule that
// one alternative may hold when Epsilon alternatives are eliminated. Each
// such reference doubles the number of alternatives it is rewritten into.
const MaxNullablePositions = 4

// eliminateEpsilons removes every alternative that is only Epsilon. Each time
// one is removed from a rule N, every alternative of every other rule that
// refers to N is replaced with one variant per combination of keeping or
// dropping each of those references, so
//
//	B -> X N Y
//
// becomes
//
//	B -> X N Y | X Y
//
// A rule that refers to itself is not rewritten for its own Epsilon
// alternative; only the Epsilon alternative is removed from it.
func (g *graph) eliminateEpsilons() error {
	for {
		// only a written ε counts; an empty variant made below is left as it is
		var nullable *node
		for _, n := range g.live() {
			for _, alt := range n.alts {
				if isEpsilonAlt(alt) {
					nullable = n
					break
				}
			}
			if nullable != nil {
				break
			}
		}
		if nullable == nil {
			return nil
		}

		kept := make([][]part, 0, len(nullable.alts))
		for _, alt := range nullable.alts {
			if !isEpsilonAlt(alt) {
				kept = append(kept, alt)
			}
		}
		nullable.alts = kept
		tracer().Debugf("removed ε alternative from %s", nullable.name)

		ref := rulePart(nullable.num)
		for _, n := range g.live() {
			if n == nullable {
				continue
			}

			for i := 0; i < len(n.alts); i++ {
				alt := n.alts[i]

				var positions []int
				for pos := range alt {
					if alt[pos] == ref {
						positions = append(positions, pos)
					}
				}
				if len(positions) == 0 {
					continue
				}
				if len(positions) > MaxNullablePositions {
					return nonTerminationErrorf(n.name, "alternative %q refers to nullable rule %q %d times; at most %d are supported", g.altString(alt), nullable.name, len(positions), MaxNullablePositions)
				}

				before := len(n.alts)
				n.replaceAlt(i, nullableVariants(alt, positions))
				tracer().Debugf("%s: rewrote %q into %d alternatives", n.name, g.altString(alt), len(n.alts)-before+1)

				// skip past the variants so they are not rewritten again
				i += len(n.alts) - before
			}
		}
	}
}

// nullableVariants returns every alternative obtained from alt by either
// keeping or dropping the symbol at each of the given positions. The first
// variant keeps all of them. A variant may be empty.
func nullableVariants(alt []part, positions []int) [][]part {
	count := 1 << len(positions)
	variants := make([][]part, 0, count)

	for dropMask := 0; dropMask < count; dropMask++ {
		drop := map[int]bool{}
		for bit, pos := range positions {
			if dropMask&(1<<bit) != 0 {
				drop[pos] = true
			}
		}

		variant := make([]part, 0, len(alt))
		for pos := range alt {
			if !drop[pos] {
				variant = append(variant, alt[pos])
			}
		}
		variants = append(variants, variant)
	}

	return variants
}
