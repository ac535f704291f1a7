/*
Package grammar normalizes context-free grammars into a form that can be
parsed top-down with a single symbol of lookahead.

Grammars are given as text, one rule per line:

	# comments run to the end of the line
	start -> expr
	expr  -> expr + term | term
	term  -> ( expr ) | INT | ID
	opt   -> , ID |

Symbols in an alternative are separated by spaces. A symbol is a terminal if
it is the literal spelling of a terminal.Kind (such as "(" or "return"), and
an empty alternative stands for Epsilon. Any other symbol names a rule. Every
terminal kind that can occur in input also has a rule of its own named after
the kind in upper case ("ID", "INT", "LPAREN"), so terminals without a
literal spelling are written by that name. A rule named "start" must exist.

Output keeps the two apart. A reference to a terminal rule is shown by the
rule name, "ID". The terminal itself is shown by its literal spelling or, if
it has none, by its kind name, "Id". The passes replace a reference that
leads an alternative with what it stands for, so

	T -> ID | ( T ) ID

comes out as

	T -> Id | ( T ) ID

and FIRST and FOLLOW sets, which only ever hold terminals, show "Id" and
never "ID". Epsilon is shown as "ε" and the end of input as "$".

Normalize runs the text through a fixed series of rewrites:

 1. Epsilon elimination removes every alternative that is only Epsilon and
    adds variants without the vanished rule wherever it was referenced.
 2. Left-recursion elimination substitutes leading references in rule
    creation order and moves immediately left-recursive alternatives into
    new helper rules named after the original with a "_p<N>" suffix.
 3. Left expansion replaces every leading rule reference with the
    alternatives of that rule, so that all alternatives begin with a
    terminal. This only reaches a fixed point because step 2 has already
    removed every cycle of leading references.
 4. Backtracking elimination factors common prefixes out of the
    alternatives of a rule into new helper rules.
 5. Duplicate merging folds rules that have the same set of alternatives
    into one.

Steps 3 through 5 only run when Options.EliminateBacktracking is set. After
that, FIRST and FOLLOW sets are computed, the result is frozen into an
immutable Grammar, and that Grammar is validated. Any failure along the way
aborts the whole operation; no partial Grammar is ever returned.

A Grammar is never modified after it is returned and may be read from any
number of goroutines at once.
*/
package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'gnorm.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("gnorm.grammar")
}
