package grammar

import (
	"testing"

	"github.com/dekarrin/gnorm/terminal"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, text string) *graph {
	g, err := parse(text)
	if err != nil {
		t.Fatalf("parse failed: %s", err.Error())
	}
	return g
}

func nodeAlts(g *graph, name string) []string {
	n, ok := g.lookup(name)
	if !ok {
		return nil
	}
	alts := []string{}
	for _, alt := range n.alts {
		alts = append(alts, g.altString(alt))
	}
	return alts
}

func Test_parse(t *testing.T) {
	assert := assert.New(t)

	g := mustParse(t, `
		# a comment on its own
		start -> expr ;   # and one after a rule

		expr  -> ( expr ) | ID | INT ,
		expr  -> fn |
	`)

	assert.Equal([]string{"expr ;"}, nodeAlts(g, "start"))
	assert.Equal([]string{"( expr )", "ID", "INT ,", "fn", "ε"}, nodeAlts(g, "expr"))

	for _, k := range terminal.All() {
		n, ok := g.lookup(k.RuleName())
		if !k.InRules() {
			assert.Falsef(ok, "rule for %v should not exist", k)
			continue
		}
		if assert.Truef(ok, "rule for %v missing", k) {
			assert.Equal([][]part{{termPart(k)}}, n.alts)
			assert.Less(n.num, g.termRules)
		}
	}

	start, _ := g.lookup("start")
	expr, _ := g.lookup("expr")
	assert.Equal(g.termRules, start.num)
	assert.Equal(g.termRules+1, expr.num)
}

func Test_parse_errorLine(t *testing.T) {
	assert := assert.New(t)

	_, err := parse("start -> a\n\na -> ( b )\n")

	var gErr Error
	if assert.ErrorAs(err, &gErr) {
		assert.Equal(3, gErr.Line())
		assert.Contains(gErr.Error(), `"b"`)
	}
}

func Test_nextHelperName(t *testing.T) {
	testCases := []struct {
		input  string
		expect string
	}{
		{input: "expr", expect: "expr_p0"},
		{input: "expr_p0", expect: "expr_p1"},
		{input: "expr_p9", expect: "expr_p10"},
		{input: "a_p1_x", expect: "a_p1_x_p0"},
		{input: "a_px", expect: "a_px_p0"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expect, nextHelperName(tc.input))
		})
	}
}

func Test_graph_newHelper(t *testing.T) {
	assert := assert.New(t)

	g := mustParse(t, "start -> expr\nexpr -> fn")
	g.add("expr_p0")

	h := g.newHelper("expr")

	assert.Equal("expr_p1", h.name)
	assert.Equal(len(g.nodes)-1, h.num)
}

func Test_eliminateEpsilons(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gnorm.grammar")
	defer teardown()

	testCases := []struct {
		name   string
		input  string
		expect map[string][]string
	}{
		{
			name:  "one reference",
			input: "start -> B\nB -> X A Y\nA -> | (\nX -> fn\nY -> return",
			expect: map[string][]string{
				"B": {"X A Y", "X Y"},
				"A": {"("},
			},
		},
		{
			name:  "rule that is only ε",
			input: "start -> B\nB -> X A Y\nA ->\nX -> fn\nY -> return",
			expect: map[string][]string{
				"B": {"X A Y", "X Y"},
				"A": {},
			},
		},
		{
			name:  "variants that repeat are dropped",
			input: "start -> A A A A\nA -> , |",
			expect: map[string][]string{
				"start": {"A A A A", "A A A", "A A", "A", "ε"},
			},
		},
		{
			name:  "variants go where the original was",
			input: "start -> ( | A , | )\nA -> fn |",
			expect: map[string][]string{
				"start": {"(", "A ,", ",", ")"},
			},
		},
		{
			name:  "ε propagates through chains",
			input: "start -> B ;\nB -> A |\nA -> fn |",
			expect: map[string][]string{
				"start": {"B ;", ";"},
				"B":     {"A", "ε"},
			},
		},
		{
			name:  "self reference is not rewritten",
			input: "start -> ( A\nA -> A ) |",
			expect: map[string][]string{
				"start": {"( A", "("},
				"A":     {"A )"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := mustParse(t, tc.input)

			err := g.eliminateEpsilons()
			if !assert.NoError(err) {
				return
			}

			for name, expect := range tc.expect {
				assert.Equalf(expect, nodeAlts(g, name), "alternatives of %q", name)
			}
		})
	}
}

func Test_expandLeft(t *testing.T) {
	assert := assert.New(t)

	g := mustParse(t, "start -> a b\na -> ( | c fn\nb -> return\nc -> ,")
	if !assert.NoError(g.eliminateLeftRecursion()) {
		return
	}

	err := g.expandLeft()
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"( b", ", fn b"}, nodeAlts(g, "start"))
	assert.Equal([]string{"(", ", fn"}, nodeAlts(g, "a"))
}

func Test_eliminateBacktracking(t *testing.T) {
	assert := assert.New(t)

	g := mustParse(t, "start -> S\nS -> A B | A C\nA -> fn\nB -> ,\nC -> ;")

	err := g.eliminateBacktracking()
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"A S_p0"}, nodeAlts(g, "S"))
	assert.Equal([]string{"B", "C"}, nodeAlts(g, "S_p0"))
}

func Test_mergeDuplicates(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		expect  map[string][]string
		removed []string
	}{
		{
			name:  "later rule is folded into earlier",
			input: "start -> a | b\na -> ( x\nb -> ( x\nx -> fn ,",
			expect: map[string][]string{
				"start": {"a"},
				"a":     {"( x"},
			},
			removed: []string{"b"},
		},
		{
			name:  "order of alternatives does not matter",
			input: "start -> a b\na -> ( | )\nb -> ) | (",
			expect: map[string][]string{
				"start": {"a a"},
			},
			removed: []string{"b"},
		},
		{
			name:  "start survives",
			input: "start -> ( ,\nother -> ( ,",
			expect: map[string][]string{
				"start": {"( ,"},
			},
			removed: []string{"other"},
		},
		{
			name:  "rule equal to a terminal rule is folded into it",
			input: "start -> ( x\nx -> fn",
			expect: map[string][]string{
				"start": {"( FN"},
			},
			removed: []string{"x"},
		},
		{
			name:  "merging cascades",
			input: "start -> a , | b ;\na -> ( c\nb -> ( d\nc -> fn )\nd -> fn )",
			expect: map[string][]string{
				"start": {"a ,", "a ;"},
				"a":     {"( c"},
			},
			removed: []string{"b", "d"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := mustParse(t, tc.input)
			g.mergeDuplicates()

			for name, expect := range tc.expect {
				assert.Equalf(expect, nodeAlts(g, name), "alternatives of %q", name)
			}
			for _, name := range tc.removed {
				_, ok := g.lookup(name)
				assert.Falsef(ok, "rule %q was not removed", name)
			}
			for _, k := range terminal.All() {
				if k.InRules() {
					_, ok := g.lookup(k.RuleName())
					assert.Truef(ok, "rule for %v was removed", k)
				}
			}
		})
	}
}

func Test_concat(t *testing.T) {
	comma := termPart(terminal.Comma)
	semi := termPart(terminal.Semicolon)

	testCases := []struct {
		name   string
		a, b   []part
		expect []part
	}{
		{name: "both have symbols", a: []part{comma}, b: []part{semi}, expect: []part{comma, semi}},
		{name: "ε then symbols", a: []part{epsilonPart}, b: []part{semi}, expect: []part{semi}},
		{name: "symbols then ε", a: []part{comma}, b: []part{epsilonPart}, expect: []part{comma}},
		{name: "ε then nothing", a: []part{epsilonPart}, b: nil, expect: []part{epsilonPart}},
		{name: "empty then empty", a: nil, b: nil, expect: []part{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, concat(tc.a, tc.b))
		})
	}
}

func Test_node_emptyAlternatives(t *testing.T) {
	comma := termPart(terminal.Comma)

	t.Run("ε is not added next to an empty alternative", func(t *testing.T) {
		assert := assert.New(t)

		n := &node{alts: [][]part{{comma}, {}}}

		assert.True(n.hasAlt([]part{epsilonPart}))
		assert.False(n.addAlt([]part{epsilonPart}))
		assert.Len(n.alts, 2)
	})

	t.Run("replacement drops ε already present as empty", func(t *testing.T) {
		assert := assert.New(t)

		n := &node{alts: [][]part{{rulePart(30)}, {}}}
		n.replaceAlt(0, [][]part{{comma}, {epsilonPart}})

		assert.Equal([][]part{{comma}, {}}, n.alts)
	})

	t.Run("dedupe keeps the first of the two", func(t *testing.T) {
		assert := assert.New(t)

		n := &node{alts: [][]part{{epsilonPart}, {comma}, {}}}
		n.dedupe()

		assert.Equal([][]part{{epsilonPart}, {comma}}, n.alts)
	})
}

func Test_sameSymbols(t *testing.T) {
	eps := TermSymbol(terminal.Epsilon)
	comma := TermSymbol(terminal.Comma)

	testCases := []struct {
		name   string
		a, b   []Symbol
		expect bool
	}{
		{name: "empty and ε", a: nil, b: []Symbol{eps}, expect: true},
		{name: "ε and empty", a: []Symbol{eps}, b: []Symbol{}, expect: true},
		{name: "empty and symbol", a: nil, b: []Symbol{comma}, expect: false},
		{name: "ε and symbol", a: []Symbol{eps}, b: []Symbol{comma}, expect: false},
		{name: "same symbols", a: []Symbol{comma, comma}, b: []Symbol{comma, comma}, expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, sameSymbols(tc.a, tc.b))
		})
	}
}
