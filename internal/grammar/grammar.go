// Package grammar is the core data model and fixed-point analysis engine for
// context-free grammars: the symbol registry, the grammar builder, the
// nullable/FIRST/FOLLOW engine, left-recursion elimination, and the LL(1)
// table builder. It is grounded on github.com/dekarrin/tunaq's
// internal/ictiobus/grammar package for naming and layout conventions, and
// on the distilled compiler-course-helper's src/grammar/grammar.rs for the
// exact shape of the data model.
package grammar

import (
	"fmt"

	"github.com/dhollis/grammatica/internal/gmerrors"
)

// Grammar is a symbol registry plus an optional start symbol and a validity
// flag for the nullable/FIRST/FOLLOW cache. A Grammar is a plain value type:
// all analyses take one as input and return new, independently owned
// artifacts (automata, tables). There is no global state.
type Grammar struct {
	symbols  []symbolEntry
	byName   map[string]int
	start    int // index, or -1 if unset
	nffValid bool
}

// New creates an empty Grammar with the two reserved symbols registered: ε
// at index EpsilonIndex (nullable, no productions) and $ at index
// EndMarkIndex.
func New() *Grammar {
	g := &Grammar{
		byName: make(map[string]int),
		start:  -1,
	}

	epsIdx := g.addSymbol(KindNonTerminal, Epsilon)
	g.symbols[epsIdx].nt.Nullable = true

	g.addSymbol(KindTerminal, EndMark)

	return g
}

func (g *Grammar) addSymbol(kind SymbolKind, name string) int {
	idx := len(g.symbols)
	entry := symbolEntry{kind: kind, name: name}
	if kind == KindNonTerminal {
		entry.nt = newNonTerminal(idx, name)
	}
	g.symbols = append(g.symbols, entry)
	g.byName[name] = idx
	return idx
}

// invalidate clears the nullable/FIRST/FOLLOW cache. Called by every
// mutating operation: adding a symbol or production, setting the start
// symbol, and left-recursion elimination.
func (g *Grammar) invalidate() {
	g.nffValid = false
}

// AddTerminal registers a new terminal and returns its index. If name is
// already registered, the existing index is returned unchanged (the
// registry never renumbers or duplicates a symbol).
func (g *Grammar) AddTerminal(name string) int {
	if idx, ok := g.byName[name]; ok {
		return idx
	}
	idx := g.addSymbol(KindTerminal, name)
	g.invalidate()
	return idx
}

// AddNonTerminal registers a new nonterminal and returns its index, or
// returns the existing index if name is already registered.
func (g *Grammar) AddNonTerminal(name string) int {
	if idx, ok := g.byName[name]; ok {
		return idx
	}
	idx := g.addSymbol(KindNonTerminal, name)
	g.invalidate()
	return idx
}

// AddProduction appends a production to nonterminal lhs. Every symbol in
// rhs must already be registered; rhs must not be empty (use
// []int{EpsilonIndex} for the empty right-hand side).
func (g *Grammar) AddProduction(lhs int, rhs []int) error {
	if len(rhs) == 0 {
		return fmt.Errorf("production for %q has empty right-hand side; use epsilon", g.SymbolName(lhs))
	}
	nt, err := g.mustNonTerminal(lhs)
	if err != nil {
		return err
	}
	for _, s := range rhs {
		if s < 0 || s >= len(g.symbols) {
			return fmt.Errorf("production for %q references unregistered symbol index %d", nt.Name, s)
		}
	}
	prod := make(Production, len(rhs))
	copy(prod, rhs)
	nt.Productions = append(nt.Productions, prod)
	g.invalidate()
	return nil
}

// Resolve returns the index of the symbol named name, if registered.
func (g *Grammar) Resolve(name string) (int, bool) {
	idx, ok := g.byName[name]
	return idx, ok
}

// FreshPrime appends "'" to name until the result names no registered
// symbol, and returns that name (without registering it). Used by
// left-recursion elimination and by LR automaton augmentation to mint a
// nonterminal name guaranteed not to collide with any existing symbol.
func (g *Grammar) FreshPrime(name string) string {
	for {
		name = name + "'"
		if _, ok := g.byName[name]; !ok {
			return name
		}
	}
}

// SetStart designates index as the grammar's start symbol. Invalidates the
// nullable/FIRST/FOLLOW cache, since FOLLOW(start) is seeded specially.
func (g *Grammar) SetStart(index int) {
	g.start = index
	g.invalidate()
}

// StartIndex returns the start symbol's index, or -1 if none is set.
func (g *Grammar) StartIndex() int {
	return g.start
}

// StartName returns the start symbol's name, or "" if none is set.
func (g *Grammar) StartName() string {
	if g.start < 0 {
		return ""
	}
	return g.SymbolName(g.start)
}

// SymbolName returns the display name of the symbol at idx.
func (g *Grammar) SymbolName(idx int) string {
	return g.symbols[idx].name
}

// IsTerminal reports whether idx names a terminal.
func (g *Grammar) IsTerminal(idx int) bool {
	return g.symbols[idx].kind == KindTerminal
}

// IsNonTerminal reports whether idx names a nonterminal (including ε).
func (g *Grammar) IsNonTerminal(idx int) bool {
	return g.symbols[idx].kind == KindNonTerminal
}

// NT returns the nonterminal record at idx. Panics if idx is a terminal;
// callers are expected to check IsTerminal/IsNonTerminal first, mirroring
// the teacher's own mustNonTerminal-style accessors.
func (g *Grammar) NT(idx int) *NonTerminal {
	nt := g.symbols[idx].nt
	if nt == nil {
		panic(fmt.Sprintf("symbol %q is not a nonterminal", g.symbols[idx].name))
	}
	return nt
}

func (g *Grammar) mustNonTerminal(idx int) (*NonTerminal, error) {
	if idx < 0 || idx >= len(g.symbols) {
		return nil, fmt.Errorf("symbol index %d is out of range", idx)
	}
	nt := g.symbols[idx].nt
	if nt == nil {
		return nil, fmt.Errorf("symbol %q is a terminal, not a nonterminal", g.symbols[idx].name)
	}
	return nt, nil
}

// Terminals returns the indices of every terminal (including $) in
// insertion order.
func (g *Grammar) Terminals() []int {
	var out []int
	for i, s := range g.symbols {
		if s.kind == KindTerminal {
			out = append(out, i)
		}
	}
	return out
}

// NonTerminals returns the indices of every nonterminal in insertion order,
// excluding ε.
func (g *Grammar) NonTerminals() []int {
	var out []int
	for i, s := range g.symbols {
		if s.kind == KindNonTerminal && i != EpsilonIndex {
			out = append(out, i)
		}
	}
	return out
}

// SymbolCount returns the number of registered symbols, reserved symbols
// included.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// Copy returns a deep copy of g: an independent symbol table, production
// lists, and nullable/FIRST/FOLLOW cache that can be mutated (e.g. by
// left-recursion elimination) without affecting the original.
func (g *Grammar) Copy() *Grammar {
	cp := &Grammar{
		symbols:  make([]symbolEntry, len(g.symbols)),
		byName:   make(map[string]int, len(g.byName)),
		start:    g.start,
		nffValid: g.nffValid,
	}
	for k, v := range g.byName {
		cp.byName[k] = v
	}
	for i, s := range g.symbols {
		entry := symbolEntry{kind: s.kind, name: s.name}
		if s.nt != nil {
			ntCopy := &NonTerminal{
				Index:       s.nt.Index,
				Name:        s.nt.Name,
				Nullable:    s.nt.Nullable,
				First:       s.nt.First.Copy(),
				Follow:      s.nt.Follow.Copy(),
				Productions: make([]Production, len(s.nt.Productions)),
			}
			for j, p := range s.nt.Productions {
				prod := make(Production, len(p))
				copy(prod, p)
				ntCopy.Productions[j] = prod
			}
			entry.nt = ntCopy
		}
		cp.symbols[i] = entry
	}
	return cp
}

// EnsureValid raises gmerrors.UndefinedStart if no start symbol is set;
// otherwise it recomputes nullable/FIRST/FOLLOW if the cache has been
// invalidated since the last call, and is a no-op (and idempotent) if the
// cache is already valid.
func (g *Grammar) EnsureValid() error {
	if g.nffValid {
		return nil
	}
	if g.start < 0 {
		return gmerrors.UndefinedStart()
	}
	g.resetNFF()
	g.computeNullable()
	g.computeFirst()
	g.NT(g.start).Follow.Add(EndMarkIndex)
	g.computeFollow()
	g.nffValid = true
	return nil
}

// resetNFF clears nullable, FIRST, and FOLLOW on every nonterminal.
func (g *Grammar) resetNFF() {
	for _, s := range g.symbols {
		if s.nt == nil || s.nt.Index == EpsilonIndex {
			continue
		}
		s.nt.Nullable = false
		for k := range s.nt.First {
			delete(s.nt.First, k)
		}
		for k := range s.nt.Follow {
			delete(s.nt.Follow, k)
		}
	}
}
