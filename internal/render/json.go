package render

import (
	"github.com/dhollis/grammatica/internal/automaton"
	"github.com/dhollis/grammatica/internal/grammar"
)

// Report is the JSON host-language binding for a full analysis, grounded
// on github.com/nihei9/vartan's spec/grammar/description.go Report type:
// the same terminal/nonterminal/production/state shape, adapted to this
// engine's name-keyed symbols and its kept (not resolved) conflict cells.
type Report struct {
	Terminals    []TerminalJSON    `json:"terminals"`
	NonTerminals []NonTerminalJSON `json:"non_terminals"`
	Productions  []ProductionJSON  `json:"productions"`
	States       []StateJSON       `json:"states,omitempty"`
	Conflicts    []ConflictJSON    `json:"conflicts,omitempty"`
}

type TerminalJSON struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type NonTerminalJSON struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Nullable bool     `json:"nullable"`
	First    []string `json:"first"`
	Follow   []string `json:"follow"`
}

type ProductionJSON struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

type ItemJSON struct {
	Left      string   `json:"left"`
	Right     []string `json:"right"`
	Dot       int      `json:"dot"`
	Lookahead []string `json:"lookahead,omitempty"`
}

type TransitionJSON struct {
	Symbol string `json:"symbol"`
	State  int    `json:"state"`
}

type ReduceJSON struct {
	LHS       string   `json:"lhs"`
	RHS       []string `json:"rhs"`
	LookAhead []string `json:"look_ahead"`
}

type StateJSON struct {
	Number int              `json:"number"`
	Start  bool             `json:"start,omitempty"`
	Accept bool             `json:"accept,omitempty"`
	Kernel []ItemJSON       `json:"kernel"`
	Shift  []TransitionJSON `json:"shift"`
	Reduce []ReduceJSON     `json:"reduce"`
	GoTo   []TransitionJSON `json:"goto"`
}

type ConflictJSON struct {
	State    int    `json:"state"`
	Terminal string `json:"terminal"`
	Kind     string `json:"kind"`
}

// BuildReport assembles the full JSON report for a grammar, optionally
// including automaton/table detail when a and t are non-nil (the "prod" and
// "nff" output kinds pass nil for both).
func BuildReport(g *grammar.Grammar, a *automaton.Automaton, t *automaton.Table) Report {
	r := Report{}

	for _, idx := range g.Terminals() {
		r.Terminals = append(r.Terminals, TerminalJSON{Index: idx, Name: g.SymbolName(idx)})
	}

	for _, idx := range g.NonTerminals() {
		nt := g.NT(idx)
		r.NonTerminals = append(r.NonTerminals, NonTerminalJSON{
			Index:    idx,
			Name:     nt.Name,
			Nullable: nt.Nullable,
			First:    joinNames(g, nt.First.Sorted()),
			Follow:   joinNames(g, nt.Follow.Sorted()),
		})
		for _, prod := range nt.Productions {
			r.Productions = append(r.Productions, ProductionJSON{
				LHS: nt.Name,
				RHS: joinNames(g, prod),
			})
		}
	}

	if a == nil {
		return r
	}

	for i, s := range a.States {
		st := StateJSON{Number: i, Start: i == a.Start, Accept: i == a.End}
		for _, it := range s.Kernel {
			st.Kernel = append(st.Kernel, toItemJSON(it))
		}
		for _, sym := range sortedEdgeSymbols(s.Edges) {
			idx, ok := g.Resolve(sym)
			target := s.Edges[sym]
			if ok && g.IsTerminal(idx) {
				st.Shift = append(st.Shift, TransitionJSON{Symbol: sym, State: target})
			} else {
				st.GoTo = append(st.GoTo, TransitionJSON{Symbol: sym, State: target})
			}
		}
		if t != nil {
			for _, it := range s.AllItems() {
				if _, ok := it.AtDot(); !ok && it.Left != a.AugmentedStart {
					var la []string
					if a.Mode == automaton.LR0 {
						la = a.Follow[it.Left]
					} else {
						la = it.Lookahead
					}
					st.Reduce = append(st.Reduce, ReduceJSON{LHS: it.Left, RHS: it.Right, LookAhead: la})
				}
			}
		}
		r.States = append(r.States, st)
	}

	if t != nil {
		for _, c := range t.Conflicts() {
			r.Conflicts = append(r.Conflicts, ConflictJSON{State: c.State, Terminal: c.Terminal, Kind: c.Kind.String()})
		}
	}

	return r
}

func toItemJSON(it automaton.DottedItem) ItemJSON {
	return ItemJSON{Left: it.Left, Right: it.Right, Dot: it.Position, Lookahead: it.Lookahead}
}

func joinNames(g *grammar.Grammar, idxs []int) []string {
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.SymbolName(idx)
	}
	return out
}
