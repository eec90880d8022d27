package grammar

import "github.com/dhollis/grammatica/internal/gramutil"

// computeNullable is the nullable fixed-point pass: a nonterminal becomes
// nullable if any of its productions consists entirely of nullable symbols.
// ε is nullable by construction (set at Grammar.New and never reset).
func (g *Grammar) computeNullable() {
	changed := true
	for changed {
		changed = false
		for _, s := range g.symbols {
			if s.nt == nil || s.nt.Nullable {
				continue
			}
			for _, prod := range s.nt.Productions {
				if g.productionNullable(prod) {
					s.nt.Nullable = true
					changed = true
					break
				}
			}
		}
	}
}

func (g *Grammar) productionNullable(prod Production) bool {
	for _, sym := range prod {
		if g.IsTerminal(sym) {
			return false
		}
		if !g.NT(sym).Nullable {
			return false
		}
	}
	return true
}

// FirstOfSequence computes FIRST(α) for a symbol-index sequence: scan left
// to right, union FIRST(s) for each symbol s (a terminal contributes
// itself; a nonterminal contributes its stored FIRST), stopping at the
// first non-nullable symbol. Requires FIRST/nullable to already be valid
// for every nonterminal appearing in seq.
func (g *Grammar) FirstOfSequence(seq []int) gramutil.IntSet {
	result := gramutil.NewIntSet()
	for _, sym := range seq {
		if g.IsTerminal(sym) {
			result.Add(sym)
			break
		}
		nt := g.NT(sym)
		result.AddAll(nt.First)
		if !nt.Nullable {
			break
		}
	}
	return result
}

// SequenceNullable reports whether every symbol in seq is nullable (true
// for the empty sequence).
func (g *Grammar) SequenceNullable(seq []int) bool {
	return g.productionNullable(Production(seq))
}

// computeFirst is the FIRST fixed-point pass: FIRST(N) is the union, over
// every production α of N, of FIRST(α) as defined by FirstOfSequence.
func (g *Grammar) computeFirst() {
	changed := true
	for changed {
		changed = false
		for _, s := range g.symbols {
			if s.nt == nil {
				continue
			}
			union := gramutil.NewIntSet()
			for _, prod := range s.nt.Productions {
				union.AddAll(g.FirstOfSequence(prod))
			}
			if !s.nt.First.Equal(union) {
				s.nt.First = union
				changed = true
			}
		}
	}
}

// computeFollow is the FOLLOW fixed-point pass. FOLLOW(start) must already
// contain $ (seeded by the caller before this runs). For each production
// N -> X1...Xk, it walks the right-hand side right to left, maintaining a
// trailingFirst set (FIRST of the nullable-free suffix seen so far) and a
// maybeFollow flag (true while the suffix seen so far is entirely
// nullable, meaning FOLLOW(N) itself still propagates to positions further
// left).
func (g *Grammar) computeFollow() {
	changed := true
	for changed {
		changed = false
		for _, s := range g.symbols {
			if s.nt == nil {
				continue
			}
			n := s.nt
			for _, prod := range n.Productions {
				trailingFirst := gramutil.NewIntSet()
				maybeFollow := true

				for i := len(prod) - 1; i >= 0; i-- {
					xi := prod[i]

					if g.IsTerminal(xi) {
						// terminals have no FOLLOW to update; just refresh
						// the trailing accumulators for positions to the left.
						trailingFirst = gramutil.NewIntSet(xi)
						maybeFollow = false
						continue
					}

					xNT := g.NT(xi)
					before := xNT.Follow.Len()
					xNT.Follow.AddAll(trailingFirst)
					if maybeFollow {
						xNT.Follow.AddAll(n.Follow)
					}
					if xNT.Follow.Len() != before {
						changed = true
					}

					if xNT.Nullable {
						trailingFirst.AddAll(xNT.First)
						// maybeFollow unchanged: stays true only if it was
						// already true and this symbol is also nullable.
					} else {
						trailingFirst = xNT.First.Copy()
						maybeFollow = false
					}
				}
			}
		}
	}
}
