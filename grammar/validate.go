package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gnorm/internal/util"
)

// Validate checks that rules hold to the structure every normalized grammar
// must have:
//
//   - every rule has at least one alternative and a non-empty FIRST set.
//   - no two alternatives of a rule are the same.
//   - at least one alternative of each rule is empty, begins with a terminal,
//     or begins with a reference to some other rule.
//   - ε is only ever the sole symbol of an alternative.
//   - every rule has a valid name that no other rule has.
//
// If any of these do not hold, the returned error will list every problem
// found, and errors.Is(err, ErrStructure) will return true.
func Validate(rules []*Rule) error {
	var problems []Error
	seenNames := map[string]int{}

	for _, r := range rules {
		if r == nil {
			continue
		}

		seenNames[r.name]++
		if seenNames[r.name] == 2 {
			problems = append(problems, structureErrorf(r.name, "name is used by more than one rule"))
		}
		if !ruleNameRegex.MatchString(r.name) {
			problems = append(problems, structureErrorf(r.name, "not a valid rule name"))
		}

		if len(r.alts) == 0 {
			problems = append(problems, structureErrorf(r.name, "rule has no alternatives"))
			continue
		}
		if r.first.Empty() {
			problems = append(problems, structureErrorf(r.name, "FIRST set is empty"))
		}

		grounded := false
		for i, alt := range r.alts {
			if len(alt) == 0 || alt[0].IsTerminal() || alt[0].rule != r {
				grounded = true
			}

			if len(alt) > 1 {
				for _, sym := range alt {
					if sym.IsEpsilon() {
						problems = append(problems, structureErrorf(r.name, "alternative %q has ε along with other symbols", altString(alt)))
						break
					}
				}
			}

			for j := i + 1; j < len(r.alts); j++ {
				if sameSymbols(alt, r.alts[j]) {
					problems = append(problems, structureErrorf(r.name, "alternatives %d and %d are both %q", i+1, j+1, altString(alt)))
				}
			}
		}
		if !grounded {
			problems = append(problems, structureErrorf(r.name, "every alternative begins with a reference to the rule itself"))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	if len(problems) == 1 {
		return problems[0]
	}

	msgs := make([]string, len(problems))
	for i := range problems {
		msgs[i] = problems[i].Error()
	}
	return Error{
		msg:   fmt.Sprintf("%d problems found:\n%s", len(problems), strings.Join(msgs, "\n")),
		rule:  problems[0].rule,
		cause: []error{ErrStructure},
	}
}

// sameSymbols returns whether a and b are the same alternative. An
// alternative with no symbols is the same as one of just ε.
func sameSymbols(a, b []Symbol) bool {
	aEmpty := len(a) == 0 || (len(a) == 1 && a[0].IsEpsilon())
	bEmpty := len(b) == 0 || (len(b) == 1 && b[0].IsEpsilon())
	if aEmpty || bEmpty {
		return aEmpty && bEmpty
	}
	return util.EqualSlices(a, b)
}
