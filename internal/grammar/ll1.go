package grammar

// LL1Table is a matrix indexed by (nonterminal index, terminal index)
// holding, at each cell, the list of productions applicable on that
// terminal. A cell may be empty (no applicable production) or hold more
// than one production (a conflict, meaning the grammar is not LL(1)); the
// builder preserves conflicts rather than resolving or rejecting them.
type LL1Table struct {
	NonTerminals []int
	Terminals    []int
	cells        map[ll1Key][]Production
}

type ll1Key struct {
	nonTerminal int
	terminal    int
}

// Cell returns the productions of nt applicable on lookahead terminal t.
func (t *LL1Table) Cell(nt, term int) []Production {
	return t.cells[ll1Key{nt, term}]
}

func (t *LL1Table) append(nt, term int, prod Production) {
	if t.cells == nil {
		t.cells = make(map[ll1Key][]Production)
	}
	key := ll1Key{nt, term}
	t.cells[key] = append(t.cells[key], prod)
}

// HasConflicts reports whether any cell holds more than one production.
func (t *LL1Table) HasConflicts() bool {
	for _, prods := range t.cells {
		if len(prods) > 1 {
			return true
		}
	}
	return false
}

// BuildLL1Table builds the LL(1) predictive parsing table. Requires
// nullable/FIRST/FOLLOW to already be valid (call EnsureValid first); the
// precondition is the caller's responsibility, matching spec.md 4.4.
//
// For each nonterminal N and each production α of N: append α to cell
// (N, t) for every t in FIRST(α). Additionally, if α is entirely nullable,
// append α to cell (N, t) for every t in FOLLOW(N).
func (g *Grammar) BuildLL1Table() *LL1Table {
	table := &LL1Table{
		NonTerminals: g.NonTerminals(),
		Terminals:    g.Terminals(),
	}

	for _, ntIdx := range table.NonTerminals {
		nt := g.NT(ntIdx)
		for _, prod := range nt.Productions {
			first := g.FirstOfSequence(prod)
			for _, t := range first.Sorted() {
				table.append(ntIdx, t, prod)
			}
			if g.SequenceNullable(prod) {
				for _, t := range nt.Follow.Sorted() {
					table.append(ntIdx, t, prod)
				}
			}
		}
	}

	return table
}
