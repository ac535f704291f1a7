// Package report renders normalized grammars and their conflicts for people
// to read.
package report

import (
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/terminal"
	"github.com/dekarrin/rosed"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// tableColumnGap is the least space rosed puts between two columns of a
// table without borders.
const tableColumnGap = 2

// Text returns g in the same form grammar text is written in, one rule per
// line.
func Text(g grammar.Grammar) string {
	return g.String()
}

// Table returns a table of every rule of g that is not a terminal rule, laid
// out to fit in width columns. Columns are only as wide as their contents
// need. If showSets is true, FIRST and FOLLOW are included as columns.
func Table(g grammar.Grammar, width int, showSets bool) string {
	header := []string{"Rule", "Alternatives"}
	if showSets {
		header = append(header, "FIRST", "FOLLOW")
	}
	data := [][]string{header}

	for _, r := range g.Defined() {
		row := []string{r.Name(), r.AltsString()}
		if showSets {
			row = append(row, setString(r.First()), setString(r.Follow()))
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, fitWidth(data, width), rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Conflicts returns a table of cs laid out to fit in width columns, or the
// text "no conflicts" if there are none.
func Conflicts(cs []grammar.Conflict, width int) string {
	if len(cs) == 0 {
		return "no conflicts"
	}

	data := [][]string{{"Rule", "Alternative", "Alternative", "Shared"}}
	for _, c := range cs {
		alts := c.Rule.Alternatives()
		data = append(data, []string{
			c.Rule.Name(),
			altString(alts[c.Alts[0]]),
			altString(alts[c.Alts[1]]),
			setString(c.Shared),
		})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, fitWidth(data, width), rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Terminals returns every kind of terminal that the rules of g use, in kind
// order. A reference to a terminal rule counts as a use of its terminal.
func Terminals(g grammar.Grammar) []terminal.Kind {
	kinds := treeset.NewWith(utils.IntComparator)

	for _, r := range g.Defined() {
		for _, alt := range r.Alternatives() {
			for _, sym := range alt {
				if sym.IsTerminal() {
					if !sym.IsEpsilon() {
						kinds.Add(int(sym.Terminal()))
					}
				} else if ref := sym.Rule(); ref.IsTerminal() {
					kinds.Add(int(ref.Alternatives()[0][0].Terminal()))
				}
			}
		}
	}

	used := make([]terminal.Kind, 0, kinds.Size())
	for _, v := range kinds.Values() {
		used = append(used, terminal.Kind(v.(int)))
	}
	return used
}

// fitWidth returns the narrowest width that holds every cell of data without
// wrapping, or max if that is narrower.
func fitWidth(data [][]string, max int) int {
	var colWidths []int
	for _, row := range data {
		for col, cell := range row {
			if col >= len(colWidths) {
				colWidths = append(colWidths, 0)
			}
			if n := utf8.RuneCountInString(cell); n > colWidths[col] {
				colWidths[col] = n
			}
		}
	}

	total := 0
	for i, w := range colWidths {
		total += w
		if i > 0 {
			total += tableColumnGap
		}
	}

	if total > max {
		return max
	}
	return total
}

func setString(syms []grammar.Symbol) string {
	strs := make([]string, len(syms))
	for i := range syms {
		strs[i] = syms[i].String()
	}
	return "{" + strings.Join(strs, ", ") + "}"
}

func altString(alt []grammar.Symbol) string {
	if len(alt) == 0 {
		return "ε"
	}
	strs := make([]string, len(alt))
	for i := range alt {
		strs[i] = alt[i].String()
	}
	return strings.Join(strs, " ")
}
