package automaton

import (
	"fmt"
	"sort"

	"github.com/dhollis/grammatica/internal/gmerrors"
	"github.com/dhollis/grammatica/internal/grammar"
	"github.com/dhollis/grammatica/internal/gramutil"
)

// Mode selects the lookahead regime used to build the item-set collection.
type Mode int

const (
	LR0 Mode = iota
	LR1
	LALR
)

func (m Mode) String() string {
	switch m {
	case LR0:
		return "LR0"
	case LR1:
		return "LR1"
	case LALR:
		return "LALR"
	default:
		return "unknown"
	}
}

// ItemSet is one state of the automaton: a kernel and a closure (kept
// disjoint), each sorted by DottedItem.Less for canonical state equality,
// plus the outgoing edges discovered from this state's items.
type ItemSet struct {
	Kernel  []DottedItem
	Closure []DottedItem
	Edges   map[string]int // symbol name -> successor state index
}

// AllItems returns the kernel followed by the closure, the set actually
// consulted by goto and table derivation.
func (s ItemSet) AllItems() []DottedItem {
	all := make([]DottedItem, 0, len(s.Kernel)+len(s.Closure))
	all = append(all, s.Kernel...)
	all = append(all, s.Closure...)
	return all
}

// key is the canonical encoding of kernel+closure used for state
// deduplication: two states are equal iff their kernel and closure item
// sequences are equal as sorted tuples (lookaheads included).
func (s ItemSet) key() string {
	var parts []string
	for _, it := range s.Kernel {
		parts = append(parts, "K:"+it.String())
	}
	for _, it := range s.Closure {
		parts = append(parts, "C:"+it.String())
	}
	return fmt.Sprintf("%v", parts)
}

// lr0Core is the kernel+closure ignoring lookahead, the key used by the
// LALR merge pass to find states sharing an "LR(0) core".
func (s ItemSet) lr0Core() string {
	var parts []string
	for _, it := range s.Kernel {
		parts = append(parts, fmt.Sprintf("K:%s|%v|%d", it.Left, it.Right, it.Position))
	}
	for _, it := range s.Closure {
		parts = append(parts, fmt.Sprintf("C:%s|%v|%d", it.Left, it.Right, it.Position))
	}
	return fmt.Sprintf("%v", parts)
}

// Automaton is the constructed canonical collection: an ordered list of
// item sets, the start state (always 0), the accept state, and — only for
// LR0 — a snapshot of FOLLOW used by reductions in that mode.
type Automaton struct {
	Mode           Mode
	States         []ItemSet
	Start          int
	End            int
	AugmentedStart string // the fresh S' nonterminal name
	RealStart      string
	Follow         map[string][]string // non-nil only for Mode == LR0
}

// Build constructs the canonical collection of LR item sets for g under the
// given lookahead regime. Requires g to have a start symbol set; returns
// gmerrors.UndefinedStart otherwise (spec.md section 7).
func Build(g *grammar.Grammar, mode Mode) (*Automaton, error) {
	if g.StartIndex() < 0 {
		return nil, gmerrors.UndefinedStart()
	}

	// Closure needs FIRST (and FOLLOW, for LR0-mode reductions) regardless
	// of mode, so the nullable/FIRST/FOLLOW cache is always brought current
	// here rather than only for LR0.
	if err := g.EnsureValid(); err != nil {
		return nil, err
	}

	b := &builder{g: g, mode: mode}
	return b.build()
}

type builder struct {
	g    *grammar.Grammar
	mode Mode
}

func (b *builder) build() (*Automaton, error) {
	g := b.g
	realStart := g.SymbolName(g.StartIndex())
	augStart := g.FreshPrime(realStart)

	var lookahead []string
	if b.mode != LR0 {
		lookahead = []string{grammar.EndMark}
	}

	startItem := NewDottedItem(augStart, []string{realStart}, lookahead)
	states := []ItemSet{b.newState([]DottedItem{startItem})}

	queue := []int{0}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		edgeKernels := map[string][]DottedItem{}
		for _, it := range states[u].AllItems() {
			sym, ok := it.AtDot()
			if !ok {
				continue
			}
			edgeKernels[sym] = append(edgeKernels[sym], it.Advance())
		}

		if states[u].Edges == nil {
			states[u].Edges = map[string]int{}
		}

		for _, sym := range gramutil.OrderedKeys(edgeKernels) {
			kernel := edgeKernels[sym]
			candidate := b.newState(kernel)

			target := -1
			for i, s := range states {
				if s.key() == candidate.key() {
					target = i
					break
				}
			}
			if target < 0 {
				states = append(states, candidate)
				target = len(states) - 1
				queue = append(queue, target)
			}
			states[u].Edges[sym] = target
		}
	}

	end := -1
	for i, s := range states {
		for _, it := range s.Kernel {
			if it.Left == augStart && it.Position == len(it.Right) {
				end = i
			}
		}
	}

	a := &Automaton{
		Mode:           b.mode,
		States:         states,
		Start:          0,
		End:            end,
		AugmentedStart: augStart,
		RealStart:      realStart,
	}

	if b.mode == LALR {
		a.mergeLALR()
	}

	if b.mode == LR0 {
		a.Follow = map[string][]string{augStart: {grammar.EndMark}}
		for _, ntIdx := range g.NonTerminals() {
			nt := g.NT(ntIdx)
			names := make([]string, 0, nt.Follow.Len())
			for _, t := range nt.Follow.Sorted() {
				names = append(names, g.SymbolName(t))
			}
			sort.Strings(names)
			a.Follow[nt.Name] = names
		}
	}

	return a, nil
}

// newState builds a canonicalized ItemSet from a kernel: sorts/dedups the
// kernel, computes its closure, and sorts/dedups the closure, keeping the
// two disjoint.
func (b *builder) newState(kernel []DottedItem) ItemSet {
	k := append([]DottedItem(nil), kernel...)
	sortItems(k)
	k = dedupItemsSorted(k)

	closure := b.closure(k)

	return ItemSet{Kernel: k, Closure: closure}
}

// closure computes the items added by epsilon-expansion of nonterminal
// occurrences immediately after the dot, per spec.md 4.5: breadth-first
// over "nonterminal directly after the dot", propagating inherited
// lookahead sets (LR1/LALR only) by union.
func (b *builder) closure(kernel []DottedItem) []DottedItem {
	g := b.g
	isLR1 := b.mode != LR0

	lookaheadOf := map[string]gramutil.StringSet{}
	var queue []string
	seedOrder := []string{}

	addLookahead := func(name string, la []string) {
		set, ok := lookaheadOf[name]
		firstVisit := !ok
		if firstVisit {
			set = gramutil.NewStringSet()
			lookaheadOf[name] = set
			seedOrder = append(seedOrder, name)
		}
		grew := set.AddAll(gramutil.NewStringSet(la...))
		// Re-enqueue on every growth, not just first visit: a name already
		// popped and propagated may gain lookahead from a later-processed
		// predecessor, and that growth must repropagate to its successors
		// for the closure to reach an actual union fixed point.
		if firstVisit || grew {
			queue = append(queue, name)
		}
	}

	computeFirstNames := func(names []string) []string {
		idxs := make([]int, 0, len(names))
		for _, n := range names {
			idx, ok := g.Resolve(n)
			if !ok {
				continue
			}
			idxs = append(idxs, idx)
		}
		first := g.FirstOfSequence(idxs)
		out := make([]string, 0, first.Len())
		for _, t := range first.Sorted() {
			out = append(out, g.SymbolName(t))
		}
		return out
	}

	for _, it := range kernel {
		sym, ok := it.AtDot()
		if !ok {
			continue
		}
		if !b.isNonTerminalName(sym) {
			continue
		}

		var la []string
		if isLR1 {
			beta := it.Beta()
			if len(beta) > 0 {
				la = computeFirstNames(beta)
				if b.namesNullable(beta) {
					la = append(la, it.Lookahead...)
				}
			} else {
				la = append(la, it.Lookahead...)
			}
		}
		addLookahead(sym, la)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		ntIdx, _ := g.Resolve(name)
		for _, prod := range g.NT(ntIdx).Productions {
			if len(prod) == 0 {
				continue
			}
			head := g.SymbolName(prod[0])
			if !b.isNonTerminalName(head) {
				continue
			}

			var la []string
			if isLR1 {
				rest := make([]string, len(prod)-1)
				for i, s := range prod[1:] {
					rest[i] = g.SymbolName(s)
				}
				if len(rest) > 0 {
					la = computeFirstNames(rest)
					if b.namesNullable(rest) {
						la = append(la, lookaheadOf[name].Sorted()...)
					}
				} else {
					la = append(la, lookaheadOf[name].Sorted()...)
				}
			}
			addLookahead(head, la)
		}
	}

	var out []DottedItem
	for _, name := range seedOrder {
		ntIdx, _ := g.Resolve(name)
		var la []string
		if isLR1 {
			la = lookaheadOf[name].Sorted()
		}
		for _, prod := range g.NT(ntIdx).Productions {
			names := make([]string, len(prod))
			for i, s := range prod {
				names[i] = g.SymbolName(s)
			}
			out = append(out, NewDottedItem(name, names, la))
		}
	}

	sortItems(out)
	out = dedupItemsSorted(out)
	return out
}

func (b *builder) isNonTerminalName(name string) bool {
	idx, ok := b.g.Resolve(name)
	return ok && b.g.IsNonTerminal(idx)
}

func (b *builder) namesNullable(names []string) bool {
	idxs := make([]int, 0, len(names))
	for _, n := range names {
		idx, ok := b.g.Resolve(n)
		if !ok {
			return false
		}
		idxs = append(idxs, idx)
	}
	return b.g.SequenceNullable(idxs)
}

// mergeLALR partitions the canonical LR(1) collection a by LR(0) core
// (same kernel+closure ignoring lookahead), unions lookaheads within each
// partition, and rewrites outgoing edges to point at partition
// representatives. Per spec.md 4.5, edges from any two states in the same
// partition targeting the same symbol must agree on the representative
// target once cores have been correctly computed; a mismatch is an
// internal invariant violation, not a user-facing error.
func (a *Automaton) mergeLALR() {
	newID := make([]int, len(a.States))
	for i := range newID {
		newID[i] = -1
	}

	var groups [][]int
	for i := range a.States {
		if newID[i] >= 0 {
			continue
		}
		id := len(groups)
		newID[i] = id
		group := []int{i}
		for j := i + 1; j < len(a.States); j++ {
			if newID[j] >= 0 {
				continue
			}
			if a.States[i].lr0Core() == a.States[j].lr0Core() {
				newID[j] = id
				group = append(group, j)
			}
		}
		groups = append(groups, group)
	}

	merged := make([]ItemSet, len(groups))
	for gi, group := range groups {
		rep := a.States[group[0]]
		laUnion := make([]gramutil.StringSet, len(rep.Kernel)+len(rep.Closure))
		for i := range laUnion {
			laUnion[i] = gramutil.NewStringSet()
		}

		for _, si := range group {
			s := a.States[si]
			all := s.AllItems()
			for i, it := range all {
				laUnion[i].AddAll(gramutil.NewStringSet(it.Lookahead...))
			}
		}

		mergedAll := rep.AllItems()
		for i := range mergedAll {
			mergedAll[i].Lookahead = laUnion[i].Sorted()
		}

		newKernel := mergedAll[:len(rep.Kernel)]
		newClosure := mergedAll[len(rep.Kernel):]

		edges := map[string]int{}
		for _, si := range group {
			for sym, target := range a.States[si].Edges {
				mappedTarget := newID[target]
				if existing, ok := edges[sym]; ok && existing != mappedTarget {
					panic(fmt.Sprintf("internal error: LALR merge found inconsistent targets for symbol %q in merged state %d", sym, gi))
				}
				edges[sym] = mappedTarget
			}
		}

		merged[gi] = ItemSet{Kernel: newKernel, Closure: newClosure, Edges: edges}
	}

	a.States = merged
	a.Start = newID[a.Start]
	if a.End >= 0 {
		a.End = newID[a.End]
	}
}
