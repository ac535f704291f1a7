package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/gnorm/internal/util"
	"github.com/dekarrin/gnorm/terminal"
)

// part is the mutable counterpart of Symbol used while rewriting. It is
// either a terminal or the arena index of a node and is only made with
// termPart and rulePart.
type part struct {
	term terminal.Kind
	node int
}

func termPart(k terminal.Kind) part {
	if !k.Valid() {
		panic(fmt.Sprintf("not a valid terminal kind: %v", k))
	}
	return part{term: k, node: -1}
}

func rulePart(idx int) part {
	if idx < 0 {
		panic(fmt.Sprintf("not a valid rule index: %d", idx))
	}
	return part{node: idx}
}

var epsilonPart = termPart(terminal.Epsilon)

func (p part) isTerm() bool {
	return p.term != 0
}

func (p part) isEpsilon() bool {
	return p.term == terminal.Epsilon
}

// isEpsilonAlt returns whether alt is exactly [Epsilon].
func isEpsilonAlt(alt []part) bool {
	return len(alt) == 1 && alt[0].isEpsilon()
}

// isEmptyAlt returns whether alt derives only the empty string, either by
// having no symbols or by being exactly [Epsilon].
func isEmptyAlt(alt []part) bool {
	return len(alt) == 0 || isEpsilonAlt(alt)
}

// sameAlt returns whether a and b are the same alternative. The empty
// alternative and [Epsilon] are the same.
func sameAlt(a, b []part) bool {
	if isEmptyAlt(a) || isEmptyAlt(b) {
		return isEmptyAlt(a) && isEmptyAlt(b)
	}
	return util.EqualSlices(a, b)
}

// concat joins alternatives a and b into a new one. An Epsilon-only side is
// dropped when the other side has symbols so that Epsilon is never mixed into
// a longer alternative.
func concat(a, b []part) []part {
	if isEpsilonAlt(a) && len(b) > 0 {
		a = nil
	}
	if isEpsilonAlt(b) && len(a) > 0 {
		b = nil
	}
	return util.Concat(a, b)
}

// node is the mutable counterpart of Rule. Its index in the arena of the graph
// is also its creation number.
type node struct {
	name    string
	num     int
	alts    [][]part
	first   util.KeySet[part]
	follow  util.KeySet[part]
	deleted bool
}

// isTerminal returns whether n just stands for one terminal.
func (n *node) isTerminal() bool {
	return len(n.alts) == 1 && len(n.alts[0]) == 1 && n.alts[0][0].isTerm()
}

// hasAlt returns whether n already has an alternative equal to alt.
func (n *node) hasAlt(alt []part) bool {
	for _, existing := range n.alts {
		if sameAlt(existing, alt) {
			return true
		}
	}
	return false
}

// addAlt appends alt unless n already has an equal alternative. It returns
// whether alt was added.
func (n *node) addAlt(alt []part) bool {
	if n.hasAlt(alt) {
		return false
	}
	n.alts = append(n.alts, alt)
	return true
}

// replaceAlt removes the alternative at idx and puts repl in its place, in
// order. Any alternative of repl that is equal to one already in n (or to an
// earlier one in repl) is dropped.
func (n *node) replaceAlt(idx int, repl [][]part) {
	rest := n.alts[idx+1:]
	updated := make([][]part, 0, len(n.alts)+len(repl))
	updated = append(updated, n.alts[:idx]...)

	n.alts = updated
	for _, alt := range repl {
		if !n.hasAlt(alt) && !altIn(alt, rest) {
			n.alts = append(n.alts, alt)
		}
	}
	n.alts = append(n.alts, rest...)
}

func altIn(alt []part, alts [][]part) bool {
	for _, other := range alts {
		if sameAlt(other, alt) {
			return true
		}
	}
	return false
}

// dedupe drops every alternative that is equal to an earlier one.
func (n *node) dedupe() {
	kept := make([][]part, 0, len(n.alts))
	for _, alt := range n.alts {
		if !altIn(alt, kept) {
			kept = append(kept, alt)
		}
	}
	n.alts = kept
}

// graph is an arena of nodes that the rewrites operate on. Nodes are never
// removed from the arena, only marked as deleted, so an index always refers
// to the same rule.
type graph struct {
	nodes  []*node
	byName map[string]int

	// the rules for terminal kinds are always the first termRules nodes.
	termRules int

	// bound on the rounds of the iterative passes; MaxRounds unless a test
	// lowers it.
	maxRounds int
}

func newGraph() *graph {
	return &graph{byName: map[string]int{}, maxRounds: MaxRounds}
}

// add creates a new node with the given name and no alternatives. The name
// must not already be in use.
func (g *graph) add(name string) *node {
	if _, ok := g.byName[name]; ok {
		panic(fmt.Sprintf("duplicate rule name: %q", name))
	}
	n := &node{
		name:   name,
		num:    len(g.nodes),
		first:  util.NewKeySet[part](),
		follow: util.NewKeySet[part](),
	}
	g.nodes = append(g.nodes, n)
	g.byName[name] = n.num
	return n
}

// lookup returns the node with the given name.
func (g *graph) lookup(name string) (*node, bool) {
	idx, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// live returns every node that has not been deleted, in creation order.
func (g *graph) live() []*node {
	var nodes []*node
	for _, n := range g.nodes {
		if !n.deleted {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// newHelper creates a new node to hold structure factored out of the rule
// with the given name. Its name is the base name with a "_p<N>" suffix; if
// base already ends in such a suffix, N is bumped instead of adding another.
func (g *graph) newHelper(base string) *node {
	name := base
	for {
		name = nextHelperName(name)
		if _, taken := g.byName[name]; !taken {
			break
		}
	}
	return g.add(name)
}

func nextHelperName(name string) string {
	idx := strings.LastIndex(name, "_p")
	if idx >= 0 {
		if n, err := strconv.Atoi(name[idx+2:]); err == nil && n >= 0 {
			return name[:idx] + "_p" + strconv.Itoa(n+1)
		}
	}
	return name + "_p0"
}

// remove marks the node at idx deleted and frees up its name.
func (g *graph) remove(idx int) {
	n := g.nodes[idx]
	n.deleted = true
	n.alts = nil
	delete(g.byName, n.name)
}

// redirect replaces every reference to the node at from with one to the node
// at to.
func (g *graph) redirect(from, to int) {
	for _, n := range g.live() {
		changed := false
		for _, alt := range n.alts {
			for i := range alt {
				if !alt[i].isTerm() && alt[i].node == from {
					alt[i] = rulePart(to)
					changed = true
				}
			}
		}
		if changed {
			n.dedupe()
		}
	}
}

// firstOf returns FIRST of p as currently computed.
func (g *graph) firstOf(p part) util.KeySet[part] {
	if p.isTerm() {
		return util.KeySetOf([]part{p})
	}
	return g.nodes[p.node].first
}

func (g *graph) partString(p part) string {
	if p.isTerm() {
		return termRepr(p.term)
	}
	return g.nodes[p.node].name
}

func (g *graph) altString(alt []part) string {
	if len(alt) == 0 {
		return "ε"
	}
	syms := make([]string, len(alt))
	for i := range alt {
		syms[i] = g.partString(alt[i])
	}
	return strings.Join(syms, " ")
}

func (g *graph) nodeString(n *node) string {
	alts := make([]string, len(n.alts))
	for i := range n.alts {
		alts[i] = g.altString(n.alts[i])
	}
	return n.name + " -> " + strings.Join(alts, " | ")
}
