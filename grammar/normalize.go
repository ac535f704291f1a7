package grammar

// Options selects which rewrites Normalize runs.
type Options struct {
	// EliminateBacktracking also runs left expansion, backtracking
	// elimination, and duplicate merging after left recursion is
	// eliminated. Without it, the result may still have alternatives with
	// common prefixes.
	EliminateBacktracking bool
}

// Normalize parses the grammar in text and rewrites it so that it has no
// ε-only alternatives and no left recursion, and, if opts say so, no common
// prefixes. FIRST and FOLLOW sets are then computed for every rule and the
// result is validated.
//
// The returned error will be an Error that errors.Is matches against
// ErrSyntax, ErrStructure, or ErrNonTermination depending on what went wrong.
// No Grammar is returned if there is an error.
func Normalize(text string, opts Options) (Grammar, error) {
	g, err := parse(text)
	if err != nil {
		return Grammar{}, err
	}
	tracer().Debugf("parsed %d rule(s)", len(g.nodes))

	if err := g.eliminateEpsilons(); err != nil {
		return Grammar{}, err
	}
	if err := g.eliminateLeftRecursion(); err != nil {
		return Grammar{}, err
	}

	if opts.EliminateBacktracking {
		if err := g.expandLeft(); err != nil {
			return Grammar{}, err
		}
		if err := g.eliminateBacktracking(); err != nil {
			return Grammar{}, err
		}
		g.mergeDuplicates()
	}

	g.computeFirst()
	g.computeFollow()

	gram := g.freeze()
	if err := gram.Validate(); err != nil {
		return Grammar{}, err
	}

	tracer().Infof("normalized grammar has %d rule(s)", gram.Len())
	return gram, nil
}

// MustNormalize is like Normalize but panics if there is an error.
func MustNormalize(text string, opts Options) Grammar {
	g, err := Normalize(text, opts)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// Analyze parses the grammar in text and computes FIRST and FOLLOW sets for
// it exactly as written, with no rewrites and no validation. It is useful for
// checking a grammar for conflicts before it is normalized.
func Analyze(text string) (Grammar, error) {
	g, err := parse(text)
	if err != nil {
		return Grammar{}, err
	}

	g.computeFirst()
	g.computeFollow()

	return g.freeze(), nil
}
