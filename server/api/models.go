package api

import (
	"time"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/internal/store"
	"github.com/dekarrin/gnorm/server/gnormsvc"
)

// GrammarRequest is the body of a request to normalize or analyze a grammar.
type GrammarRequest struct {
	Grammar               string `json:"grammar"`
	EliminateBacktracking bool   `json:"eliminate_backtracking"`
}

type InfoModel struct {
	Version struct {
		API   string `json:"api"`
		Gnorm string `json:"gnorm"`
	} `json:"version"`
}

type RuleModel struct {
	Name         string     `json:"name"`
	Alternatives [][]string `json:"alternatives"`
	First        []string   `json:"first"`
	Follow       []string   `json:"follow"`
}

type ResultModel struct {
	ID           string      `json:"id"`
	Cached       bool        `json:"cached,omitempty"`
	Backtracking bool        `json:"eliminate_backtracking"`
	Created      string      `json:"created"`
	Source       string      `json:"source,omitempty"`
	Grammar      string      `json:"grammar,omitempty"`
	Rules        []RuleModel `json:"rules,omitempty"`
}

type ConflictModel struct {
	Rule         string     `json:"rule"`
	Alternatives [][]string `json:"alternatives"`
	Shared       []string   `json:"shared"`
	Message      string     `json:"message"`
}

type AnalysisModel struct {
	BacktrackFree bool            `json:"backtrack_free"`
	Rules         []RuleModel     `json:"rules"`
	Conflicts     []ConflictModel `json:"conflicts"`
}

func symbolStrings(syms []grammar.Symbol) []string {
	strs := make([]string, len(syms))
	for i := range syms {
		strs[i] = syms[i].String()
	}
	return strs
}

func ruleModel(r *grammar.Rule) RuleModel {
	m := RuleModel{
		Name:   r.Name(),
		First:  symbolStrings(r.First()),
		Follow: symbolStrings(r.Follow()),
	}
	for _, alt := range r.Alternatives() {
		m.Alternatives = append(m.Alternatives, symbolStrings(alt))
	}
	return m
}

func rulesModel(g grammar.Grammar) []RuleModel {
	nts := g.Defined()
	models := make([]RuleModel, len(nts))
	for i := range nts {
		models[i] = ruleModel(nts[i])
	}
	return models
}

// resultModel converts r to its API model. If withRules is false, only the
// identifying info of the result is included.
func resultModel(r store.Result, withRules bool) ResultModel {
	m := ResultModel{
		ID:           r.ID.String(),
		Backtracking: r.Backtracking,
		Created:      r.Created.Format(time.RFC3339),
	}

	if withRules {
		m.Source = r.Source
		m.Grammar = r.Grammar.String()
		m.Rules = rulesModel(r.Grammar)
	}

	return m
}

func analysisModel(a gnormsvc.Analysis) AnalysisModel {
	m := AnalysisModel{
		BacktrackFree: a.Grammar.IsBacktrackFree(),
		Rules:         rulesModel(a.Grammar),
		Conflicts:     []ConflictModel{},
	}

	for _, c := range a.Conflicts {
		alts := c.Rule.Alternatives()
		m.Conflicts = append(m.Conflicts, ConflictModel{
			Rule:         c.Rule.Name(),
			Alternatives: [][]string{symbolStrings(alts[c.Alts[0]]), symbolStrings(alts[c.Alts[1]])},
			Shared:       symbolStrings(c.Shared),
			Message:      c.String(),
		})
	}

	return m
}
