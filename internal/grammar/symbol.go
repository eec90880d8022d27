package grammar

import "github.com/dhollis/grammatica/internal/gramutil"

// Epsilon is the name of the reserved empty-string marker. It is modeled as
// a nonterminal that is always nullable and carries no productions; a
// production of length zero is forbidden, so the empty right-hand side is
// always written as the singleton [ε].
const Epsilon = "ε"

// EndMark is the name of the reserved end-of-input terminal, appended to
// FOLLOW(start) once FOLLOW has been computed.
const EndMark = "$"

// EpsilonIndex and EndMarkIndex are the dense indices of the two reserved
// symbols. They are created in that order at Grammar construction, before
// any user-defined symbol, so every symbol a reader or builder registers
// afterward has index >= 2.
const (
	EpsilonIndex = 0
	EndMarkIndex = 1
)

// SymbolKind distinguishes the two cases of the Symbol tagged variant.
type SymbolKind int

const (
	KindTerminal SymbolKind = iota
	KindNonTerminal
)

// Production is an ordered sequence of symbol indices. A production of
// length zero is forbidden; the empty right-hand side is the singleton
// [EpsilonIndex].
type Production []int

// Equal reports whether p and o name the same sequence of symbols.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// NonTerminal holds the per-nonterminal analysis fields: its stable index,
// display name, nullability, FIRST/FOLLOW sets (terminal indices only, never
// containing epsilon), and its ordered list of productions.
type NonTerminal struct {
	Index       int
	Name        string
	Nullable    bool
	First       gramutil.IntSet
	Follow      gramutil.IntSet
	Productions []Production
}

func newNonTerminal(index int, name string) *NonTerminal {
	return &NonTerminal{
		Index:       index,
		Name:        name,
		First:       gramutil.NewIntSet(),
		Follow:      gramutil.NewIntSet(),
		Productions: nil,
	}
}

// symbolEntry is the registry's internal representation of one tagged
// Symbol. Exactly one of the two cases applies: nt is non-nil iff
// kind == KindNonTerminal.
type symbolEntry struct {
	kind SymbolKind
	name string
	nt   *NonTerminal
}
