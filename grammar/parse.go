package grammar

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/dekarrin/gnorm/terminal"
)

var (
	ruleNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

	// names ending in "_p" and an optional integer are what helper rules are
	// named, so users may not use them.
	reservedNameRegex = regexp.MustCompile(`_p[0-9]*$`)
)

// parse reads grammar text into a new graph. Every terminal kind that can be
// in input gets a rule before any rule in text does.
func parse(text string) (*graph, error) {
	g := newGraph()

	for _, k := range terminal.All() {
		if !k.InRules() {
			continue
		}
		n := g.add(k.RuleName())
		n.alts = [][]part{{termPart(k)}}
	}
	g.termRules = len(g.nodes)

	// line each rule was first referenced on, for reporting undefined ones
	referencedOn := map[int]int{}
	termNames := terminalRuleNames()

	sc := bufio.NewScanner(strings.NewReader(text))
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()

		if idx := strings.IndexRune(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sides := strings.SplitN(line, "->", 2)
		if len(sides) != 2 {
			return nil, syntaxErrorf(lineNum, "rule definition is missing \"->\": %q", line)
		}

		name := strings.TrimSpace(sides[0])
		head, err := g.findOrCreate(name, lineNum)
		if err != nil {
			return nil, err
		}
		if _, isTermRule := termNames[name]; isTermRule {
			return nil, syntaxErrorf(lineNum, "%q is the rule for a terminal and cannot be redefined", name)
		}

		for _, altText := range strings.Split(sides[1], "|") {
			alt, err := g.parseAlternative(altText, lineNum, referencedOn)
			if err != nil {
				return nil, err
			}
			if !head.addAlt(alt) {
				return nil, structureErrorf(name, "line %d: alternative %q is given more than once", lineNum, g.altString(alt))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, syntaxErrorf(lineNum, "reading grammar text: %s", err.Error())
	}

	if _, ok := g.lookup(StartRule); !ok {
		return nil, syntaxErrorf(0, "no rule named %q is defined", StartRule)
	}

	for _, n := range g.nodes {
		if len(n.alts) == 0 {
			return nil, syntaxErrorf(referencedOn[n.num], "rule %q is referenced but never defined", n.name)
		}
	}

	return g, nil
}

// parseAlternative turns the text of one alternative into parts. Text that
// is empty or just "ε" is an Epsilon alternative.
func (g *graph) parseAlternative(altText string, lineNum int, referencedOn map[int]int) ([]part, error) {
	altText = strings.TrimSpace(altText)
	if altText == "" || altText == "ε" {
		return []part{epsilonPart}, nil
	}

	symTexts := strings.Fields(altText)
	alt := make([]part, 0, len(symTexts))
	for _, symText := range symTexts {
		if k, ok := terminal.FromLiteralOrEpsilon(symText); ok {
			alt = append(alt, termPart(k))
			continue
		}
		if symText == "ε" {
			return nil, syntaxErrorf(lineNum, "ε must be the only symbol in its alternative: %q", altText)
		}

		n, err := g.findOrCreate(symText, lineNum)
		if err != nil {
			return nil, err
		}
		if _, ok := referencedOn[n.num]; !ok {
			referencedOn[n.num] = lineNum
		}
		alt = append(alt, rulePart(n.num))
	}

	return alt, nil
}

// findOrCreate returns the node named name, creating it if it does not yet
// exist. New names are checked for validity first.
func (g *graph) findOrCreate(name string, lineNum int) (*node, error) {
	if n, ok := g.lookup(name); ok {
		return n, nil
	}

	if !ruleNameRegex.MatchString(name) {
		return nil, syntaxErrorf(lineNum, "invalid rule name %q; names may only contain letters, digits, and underscores", name)
	}
	if reservedNameRegex.MatchString(name) {
		return nil, syntaxErrorf(lineNum, "rule name %q is reserved; names ending in \"_p\" and a number are used for generated rules", name)
	}

	return g.add(name), nil
}

func terminalRuleNames() map[string]terminal.Kind {
	names := map[string]terminal.Kind{}
	for _, k := range terminal.All() {
		if k.InRules() {
			names[k.RuleName()] = k
		}
	}
	return names
}
