package grammar

import (
	"github.com/dekarrin/gnorm/internal/util"
	"github.com/dekarrin/gnorm/terminal"
)

// computeFirst sets FIRST of every live node. A rule that just stands for one
// terminal has FIRST of only that terminal; every other rule is computed by
// growing all of the sets together until none of them change.
func (g *graph) computeFirst() {
	nodes := g.live()

	for _, n := range nodes {
		n.first = util.NewKeySet[part]()
		if n.isTerminal() {
			n.first.Add(n.alts[0][0])
		}
	}

	rounds := 0
	for updated := true; updated; rounds++ {
		updated = false
		for _, n := range nodes {
			if n.isTerminal() {
				continue
			}
			for _, alt := range n.alts {
				if n.first.AddAll(g.seqFirst(alt)) {
					updated = true
				}
			}
		}
	}
	tracer().Debugf("FIRST sets settled after %d round(s)", rounds)
}

// seqFirst returns FIRST of a sequence of symbols as currently computed. It
// has ε only if every symbol in the sequence can derive ε; an empty sequence
// has FIRST of just ε.
func (g *graph) seqFirst(seq []part) util.KeySet[part] {
	first := util.NewKeySet[part]()
	if len(seq) == 0 {
		first.Add(epsilonPart)
		return first
	}

	for i, p := range seq {
		pFirst := g.firstOf(p)
		first.AddAll(pFirst.Without(epsilonPart))

		if !pFirst.Has(epsilonPart) {
			break
		}
		if i == len(seq)-1 {
			first.Add(epsilonPart)
		}
	}

	return first
}

// computeFollow sets FOLLOW of every live node. FIRST must already be set.
//
// Each alternative is walked from its end to its start while keeping a
// trailer of the terminals that can come after the current position. The
// trailer starts as FOLLOW of the rule the alternative is in and is added to
// FOLLOW of every rule referenced along the way.
func (g *graph) computeFollow() {
	nodes := g.live()

	for _, n := range nodes {
		n.follow = util.NewKeySet[part]()
	}
	if start, ok := g.lookup(StartRule); ok {
		start.follow.Add(termPart(terminal.Eof))
	}

	rounds := 0
	for updated := true; updated; rounds++ {
		updated = false
		for _, n := range nodes {
			for _, alt := range n.alts {
				trailer := n.follow.Copy()

				for i := len(alt) - 1; i >= 0; i-- {
					p := alt[i]
					if p.isTerm() {
						trailer = util.KeySetOf([]part{p})
						continue
					}

					ref := g.nodes[p.node]
					if ref.follow.AddAll(trailer) {
						updated = true
					}

					if ref.first.Has(epsilonPart) {
						trailer.AddAll(ref.first.Without(epsilonPart))
					} else {
						trailer = ref.first.Copy()
					}
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets settled after %d round(s)", rounds)
}

// freeze copies the live nodes of the graph into an immutable Grammar.
func (g *graph) freeze() Grammar {
	nodes := g.live()

	rules := make([]*Rule, len(nodes))
	byNum := make(map[int]*Rule, len(nodes))
	for i, n := range nodes {
		rules[i] = &Rule{name: n.name, num: n.num}
		byNum[n.num] = rules[i]
	}

	toSymbol := func(p part) Symbol {
		if p.isTerm() {
			return TermSymbol(p.term)
		}
		return RuleSymbol(byNum[p.node])
	}
	toSet := func(s util.KeySet[part]) util.KeySet[Symbol] {
		syms := util.NewKeySet[Symbol]()
		for p := range s {
			syms.Add(toSymbol(p))
		}
		return syms
	}

	for i, n := range nodes {
		r := rules[i]
		r.alts = make([][]Symbol, len(n.alts))
		for k, alt := range n.alts {
			r.alts[k] = make([]Symbol, len(alt))
			for pos := range alt {
				r.alts[k][pos] = toSymbol(alt[pos])
			}
		}
		r.first = toSet(n.first)
		r.follow = toSet(n.follow)
	}

	return newGrammar(rules)
}
