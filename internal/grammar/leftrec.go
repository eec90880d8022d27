package grammar

// EliminateLeftRecursion rewrites the grammar in place using the standard
// ordered-substitution-plus-direct-recursion-rewrite construction: for
// nonterminals N1,...,Nm in insertion order (excluding ε), every production
// Ni -> Nj γ with j < i has Nj's (already-rewritten) productions substituted
// in; then immediate left recursion on Ni is removed by introducing a fresh
// "primed" nonterminal. After the transform, no nonterminal has a
// production beginning with itself. Fresh nonterminals are appended to the
// grammar after every existing nonterminal has been processed, so that name
// collisions are resolved in a second, separate pass (mirroring the
// distilled original's two-phase structure: rewrite first, mint primes
// after).
//
// This is not safe on grammars with ε-productions that could reintroduce
// indirect left recursion after substitution; per spec this limitation is
// documented, not repaired.
func (g *Grammar) EliminateLeftRecursion() {
	order := g.NonTerminals()

	// rank[idx] gives position of idx within order, for the i<j comparisons
	// the substitution step needs.
	rank := make(map[int]int, len(order))
	for i, idx := range order {
		rank[idx] = i
	}

	type freshSpec struct {
		baseName    string
		productions []Production
	}
	var fresh []freshSpec

	for i, ntIdx := range order {
		nt := g.NT(ntIdx)
		old := nt.Productions
		nt.Productions = nil

		var recursive []Production

		for _, prod := range old {
			head := prod[0]
			j, isNT := rank[head]
			if !isNT {
				nt.Productions = append(nt.Productions, prod)
				continue
			}

			switch {
			case j < i:
				// substitute every production of the earlier, already
				// rewritten nonterminal Nj in place of the Nj prefix.
				other := g.NT(order[j])
				for _, prefix := range other.Productions {
					combined := make(Production, 0, len(prefix)+len(prod)-1)
					combined = append(combined, prefix...)
					combined = append(combined, prod[1:]...)

					if len(prefix) > 0 && prefix[0] == ntIdx {
						// prefix itself begins with Ni: the substituted
						// production is a new left-recursive case on Ni.
						recursive = append(recursive, combined[1:])
					} else {
						nt.Productions = append(nt.Productions, combined)
					}
				}
			case j == i:
				recursive = append(recursive, prod[1:])
			default: // j > i: not yet reached in this pass, leave as-is
				nt.Productions = append(nt.Productions, prod)
			}
		}

		if len(recursive) > 0 {
			fresh = append(fresh, freshSpec{baseName: nt.Name, productions: recursive})

			primeIdx := len(g.symbols) + len(fresh) - 1
			for k := range nt.Productions {
				nt.Productions[k] = append(nt.Productions[k], primeIdx)
			}
			for k := range recursive {
				recursive[k] = append(recursive[k], primeIdx)
			}
			recursive = append(recursive, Production{EpsilonIndex})
			fresh[len(fresh)-1].productions = recursive
		}
	}

	for _, f := range fresh {
		name := g.FreshPrime(f.baseName)
		idx := g.addSymbol(KindNonTerminal, name)
		g.NT(idx).Productions = f.productions
	}

	g.invalidate()
}
