package automaton

import (
	"sort"

	"github.com/dhollis/grammatica/internal/grammar"
)

// ActionKind distinguishes the three possible ACTION table entries.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is one ACTION table entry. For Shift, Target is the successor
// state; for Reduce, Production is the production to reduce by and Head is
// its left-hand nonterminal name; Accept carries neither.
type Action struct {
	Kind       ActionKind
	Target     int
	Head       string
	Production []string
}

// Table is the derived LR ACTION/GOTO table: Action is indexed by
// [state][terminal name], Goto by [state][nonterminal name]. A cell in
// Action may hold more than one entry, meaning a shift/reduce or
// reduce/reduce conflict was preserved rather than resolved, per spec.md
// 4.6.
type Table struct {
	Action []map[string][]Action
	Goto   []map[string]int
	States int
}

// ConflictKind distinguishes the two ways an ACTION cell can be ambiguous.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict describes one ambiguous ACTION cell.
type Conflict struct {
	State    int
	Terminal string
	Kind     ConflictKind
	Actions  []Action
}

// Derive builds the ACTION/GOTO table from automaton a over grammar g, per
// spec.md 4.6. In LR0/SLR mode (a.Mode == LR0) a reduce item's lookahead is
// FOLLOW(its head), taken from a.Follow; in LR1/LALR mode the item's own
// carried lookahead set is used directly. Conflicting entries are all kept
// in the same cell rather than resolved by a default shift/reduce rule,
// matching spec.md's stated non-goal of not performing LR error recovery or
// any implicit conflict resolution.
func Derive(a *Automaton, g *grammar.Grammar) *Table {
	t := &Table{
		States: len(a.States),
		Action: make([]map[string][]Action, len(a.States)),
		Goto:   make([]map[string]int, len(a.States)),
	}

	for i, state := range a.States {
		actions := map[string][]Action{}
		gotos := map[string]int{}

		for sym, target := range state.Edges {
			idx, ok := g.Resolve(sym)
			if ok && g.IsTerminal(idx) {
				actions[sym] = append(actions[sym], Action{Kind: Shift, Target: target})
			} else {
				gotos[sym] = target
			}
		}

		for _, it := range state.AllItems() {
			if _, ok := it.AtDot(); ok {
				continue
			}
			if it.Left == a.AugmentedStart {
				actions[grammar.EndMark] = append(actions[grammar.EndMark], Action{Kind: Accept})
				continue
			}

			var lookahead []string
			if a.Mode == LR0 {
				lookahead = a.Follow[it.Left]
			} else {
				lookahead = it.Lookahead
			}

			prod := append([]string(nil), it.Right...)
			for _, term := range lookahead {
				actions[term] = append(actions[term], Action{
					Kind:       Reduce,
					Head:       it.Left,
					Production: prod,
				})
			}
		}

		for term := range actions {
			sort.Slice(actions[term], func(i, j int) bool {
				return actionLess(actions[term][i], actions[term][j])
			})
			actions[term] = dedupActions(actions[term])
		}

		t.Action[i] = actions
		t.Goto[i] = gotos
	}

	return t
}

func actionLess(a, b Action) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Kind == Shift {
		return a.Target < b.Target
	}
	if a.Kind == Reduce {
		if a.Head != b.Head {
			return a.Head < b.Head
		}
		return compareStrings(a.Production, b.Production) < 0
	}
	return false
}

func dedupActions(actions []Action) []Action {
	if len(actions) == 0 {
		return actions
	}
	out := actions[:1]
	for _, act := range actions[1:] {
		prev := out[len(out)-1]
		if act.Kind == prev.Kind && act.Target == prev.Target && act.Head == prev.Head &&
			compareStrings(act.Production, prev.Production) == 0 {
			continue
		}
		out = append(out, act)
	}
	return out
}

// ActionsAt returns the ACTION cell for (state, terminal), nil if empty.
func (t *Table) ActionsAt(state int, terminal string) []Action {
	return t.Action[state][terminal]
}

// GotoAt returns the GOTO target for (state, nonterminal), or -1 if none.
func (t *Table) GotoAt(state int, nonTerminal string) int {
	if target, ok := t.Goto[state][nonTerminal]; ok {
		return target
	}
	return -1
}

// Conflicts reports every ACTION cell holding more than one entry, ordered
// by state then terminal name.
func (t *Table) Conflicts() []Conflict {
	var out []Conflict
	for state := 0; state < t.States; state++ {
		cells := t.Action[state]
		terms := make([]string, 0, len(cells))
		for term := range cells {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			acts := cells[term]
			if len(acts) < 2 {
				continue
			}
			kind := ReduceReduce
			for _, a := range acts {
				if a.Kind == Shift {
					kind = ShiftReduce
					break
				}
			}
			out = append(out, Conflict{State: state, Terminal: term, Kind: kind, Actions: acts})
		}
	}
	return out
}
