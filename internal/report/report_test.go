package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/terminal"
	"github.com/stretchr/testify/assert"
)

const exprGrammar = "start -> E\nE -> E + T | T\nT -> ( E ) | ID"

func Test_Text(t *testing.T) {
	g := grammar.MustNormalize(exprGrammar, grammar.Options{})
	assert.Equal(t, g.String(), Text(g))
}

func Test_Table(t *testing.T) {
	g := grammar.MustNormalize(exprGrammar, grammar.Options{})

	t.Run("with sets", func(t *testing.T) {
		assert := assert.New(t)

		actual := Table(g, 100, true)

		lines := strings.Split(actual, "\n")
		assert.Contains(lines[0], "RULE")
		assert.Contains(lines[0], "FIRST")
		assert.Contains(lines[0], "FOLLOW")
		assert.Contains(actual, "E_p0")
		assert.Contains(actual, "+ T E_p0 | ε")
		assert.Contains(actual, "{$}")
		assert.NotContains(actual, "PLUS")
	})

	t.Run("without sets", func(t *testing.T) {
		assert := assert.New(t)

		actual := Table(g, 100, false)

		assert.Contains(actual, "ALTERNATIVES")
		assert.NotContains(actual, "FOLLOW")
		assert.NotContains(actual, "{")
	})

	t.Run("narrow content is not stretched to width", func(t *testing.T) {
		assert := assert.New(t)

		actual := Table(g, 100, false)

		for _, line := range strings.Split(actual, "\n") {
			assert.LessOrEqualf(utf8.RuneCountInString(line), 30, "line too wide: %q", line)
		}
		assert.Contains(actual, "E_p0   + T E_p0 | ε")
	})
}

func Test_fitWidth(t *testing.T) {
	data := [][]string{
		{"Rule", "Alternatives"},
		{"start", "E"},
		{"E_p0", "+ T E_p0 | ε"},
	}

	testCases := []struct {
		name   string
		max    int
		expect int
	}{
		{name: "content is narrower", max: 100, expect: 19},
		{name: "content is exactly max", max: 19, expect: 19},
		{name: "content is wider", max: 10, expect: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, fitWidth(data, tc.max))
		})
	}
}

func Test_Conflicts(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		assert.Equal(t, "no conflicts", Conflicts(nil, 80))
	})

	t.Run("shared prefix", func(t *testing.T) {
		assert := assert.New(t)

		g, err := grammar.Analyze("start -> ( ID | ( INT")
		if !assert.NoError(err) {
			return
		}

		actual := Conflicts(grammar.LL1Conflicts(g.Rules()), 80)

		assert.Contains(actual, "start")
		assert.Contains(actual, "( ID")
		assert.Contains(actual, "( INT")
		assert.Contains(actual, "{(}")
	})
}

func Test_Terminals(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []terminal.Kind
	}{
		{
			name:   "literals and terminal rules in kind order",
			input:  "start -> ID ( start ) | fn",
			expect: []terminal.Kind{terminal.Fn, terminal.LParen, terminal.RParen, terminal.Id},
		},
		{
			name:   "repeats counted once",
			input:  "start -> , , ,",
			expect: []terminal.Kind{terminal.Comma},
		},
		{
			name:   "epsilon is not a terminal",
			input:  "start -> ; a\na -> , |",
			expect: []terminal.Kind{terminal.Semicolon, terminal.Comma},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := grammar.MustNormalize(tc.input, grammar.Options{})
			assert.Equal(t, tc.expect, Terminals(g))
		})
	}
}
