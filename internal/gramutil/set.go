// Package gramutil holds small generic collection helpers shared by the
// grammar, automaton, and render packages: an ordered int set (used for
// FIRST/FOLLOW sets of terminal indices), an ordered string set (used for
// LR lookahead sets of terminal names), a generic stack, and deterministic
// map-iteration helpers.
package gramutil

import "sort"

// IntSet is a set of ints with deterministic (sorted) iteration, used for
// FIRST and FOLLOW sets of terminal indices.
type IntSet map[int]struct{}

// NewIntSet builds an IntSet from the given members.
func NewIntSet(members ...int) IntSet {
	s := make(IntSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Add inserts v into s. Returns true if s did not already contain v.
func (s IntSet) Add(v int) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// AddAll adds every member of o to s. Returns true if s changed.
func (s IntSet) AddAll(o IntSet) bool {
	changed := false
	for v := range o {
		if s.Add(v) {
			changed = true
		}
	}
	return changed
}

// Has reports whether v is in s.
func (s IntSet) Has(v int) bool {
	_, ok := s[v]
	return ok
}

// Len is the number of members of s.
func (s IntSet) Len() int {
	return len(s)
}

// Sorted returns the members of s in ascending order.
func (s IntSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Copy returns a shallow copy of s.
func (s IntSet) Copy() IntSet {
	cp := make(IntSet, len(s))
	for v := range s {
		cp[v] = struct{}{}
	}
	return cp
}

// Equal reports whether s and o contain exactly the same members.
func (s IntSet) Equal(o IntSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// StringSet is a set of strings with deterministic (sorted) iteration. Used
// for lookahead sets keyed by terminal name during LR item construction,
// before names are resolved back to indices.
type StringSet map[string]struct{}

// NewStringSet builds a StringSet from the given members.
func NewStringSet(members ...string) StringSet {
	s := make(StringSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Add inserts v into s. Returns true if s did not already contain v.
func (s StringSet) Add(v string) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// AddAll adds every member of o to s. Returns true if s changed.
func (s StringSet) AddAll(o StringSet) bool {
	changed := false
	for v := range o {
		if s.Add(v) {
			changed = true
		}
	}
	return changed
}

// Has reports whether v is in s.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members of s alphabetized.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// OrderedKeys returns the keys of m sorted ascending, for any map whose key
// type supports ordering. Used to make map-driven output deterministic.
func OrderedKeys[M ~map[K]V, K ~string | ~int, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
