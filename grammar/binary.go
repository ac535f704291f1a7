package grammar

import (
	"fmt"

	"github.com/dekarrin/gnorm/internal/util"
	"github.com/dekarrin/gnorm/terminal"
	"github.com/dekarrin/rezi"
)

const (
	symTerminal = iota
	symRule
)

// MarshalBinary converts g into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (g Grammar) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(len(g.rules))...)
	for _, r := range g.rules {
		data = append(data, rezi.EncString(r.name)...)
		data = append(data, rezi.EncInt(r.num)...)
	}

	for _, r := range g.rules {
		data = append(data, rezi.EncInt(len(r.alts))...)
		for _, alt := range r.alts {
			data = append(data, encSymbols(alt)...)
		}
		data = append(data, encSymbols(sortedSymbols(r.first))...)
		data = append(data, encSymbols(sortedSymbols(r.follow))...)
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into g.
// All data in g is replaced. If there is an error, g is not modified.
func (g *Grammar) UnmarshalBinary(data []byte) error {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("rule count: %w", err)
	}
	data = data[n:]
	if err := checkCount(count, data); err != nil {
		return fmt.Errorf("rule count: %w", err)
	}

	rules := make([]*Rule, count)
	byNum := make(map[int]*Rule, count)
	for i := range rules {
		r := &Rule{}

		r.name, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("rule %d: name: %w", i, err)
		}
		data = data[n:]

		r.num, n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("rule %q: num: %w", r.name, err)
		}
		data = data[n:]

		if _, dup := byNum[r.num]; dup {
			return fmt.Errorf("rule %q: num %d is used by more than one rule", r.name, r.num)
		}
		rules[i] = r
		byNum[r.num] = r
	}

	for _, r := range rules {
		altCount, n, err := rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("rule %q: alternative count: %w", r.name, err)
		}
		data = data[n:]
		if err := checkCount(altCount, data); err != nil {
			return fmt.Errorf("rule %q: alternative count: %w", r.name, err)
		}

		r.alts = make([][]Symbol, altCount)
		for k := range r.alts {
			r.alts[k], n, err = decSymbols(data, byNum)
			if err != nil {
				return fmt.Errorf("rule %q: alternative %d: %w", r.name, k, err)
			}
			data = data[n:]
		}

		first, n, err := decSymbols(data, byNum)
		if err != nil {
			return fmt.Errorf("rule %q: FIRST: %w", r.name, err)
		}
		data = data[n:]
		r.first = util.KeySetOf(first)

		follow, n, err := decSymbols(data, byNum)
		if err != nil {
			return fmt.Errorf("rule %q: FOLLOW: %w", r.name, err)
		}
		data = data[n:]
		r.follow = util.KeySetOf(follow)
	}

	*g = newGrammar(rules)
	return nil
}

// checkCount returns an error if count cannot be the number of items encoded
// in data. Every item takes at least one byte.
func checkCount(count int, data []byte) error {
	if count < 0 {
		return fmt.Errorf("count is negative: %d", count)
	}
	if count > len(data) {
		return fmt.Errorf("count of %d is more than the %d bytes left", count, len(data))
	}
	return nil
}

func encSymbols(syms []Symbol) []byte {
	data := rezi.EncInt(len(syms))
	for _, s := range syms {
		if s.IsTerminal() {
			data = append(data, rezi.EncInt(symTerminal)...)
			data = append(data, rezi.EncInt(int(s.term))...)
		} else {
			data = append(data, rezi.EncInt(symRule)...)
			data = append(data, rezi.EncInt(s.rule.num)...)
		}
	}
	return data
}

func decSymbols(data []byte, byNum map[int]*Rule) ([]Symbol, int, error) {
	var totalRead int

	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, fmt.Errorf("symbol count: %w", err)
	}
	data = data[n:]
	totalRead += n
	if err := checkCount(count, data); err != nil {
		return nil, totalRead, fmt.Errorf("symbol count: %w", err)
	}

	syms := make([]Symbol, count)
	for i := range syms {
		kind, n, err := rezi.DecInt(data)
		if err != nil {
			return nil, totalRead, fmt.Errorf("symbol %d: %w", i, err)
		}
		data = data[n:]
		totalRead += n

		val, n, err := rezi.DecInt(data)
		if err != nil {
			return nil, totalRead, fmt.Errorf("symbol %d: %w", i, err)
		}
		data = data[n:]
		totalRead += n

		switch kind {
		case symTerminal:
			k := terminal.Kind(val)
			if !k.Valid() {
				return nil, totalRead, fmt.Errorf("symbol %d: not a valid terminal kind: %d", i, val)
			}
			syms[i] = TermSymbol(k)
		case symRule:
			r, ok := byNum[val]
			if !ok {
				return nil, totalRead, fmt.Errorf("symbol %d: refers to unknown rule %d", i, val)
			}
			syms[i] = RuleSymbol(r)
		default:
			return nil, totalRead, fmt.Errorf("symbol %d: unknown symbol type %d", i, kind)
		}
	}

	return syms, totalRead, nil
}
