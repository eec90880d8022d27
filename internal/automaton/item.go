// Package automaton builds the canonical collections of LR(0)/LR(1) item
// sets (with an LALR core-merging pass) and derives LR ACTION/GOTO tables
// from them. Grounded on the distilled original's src/grammar/lr_dfa.rs,
// recast in the teacher's (github.com/dekarrin/tunaq) generic-automaton
// idiom: states keyed by a canonical string, transitions recorded as plain
// maps, BFS construction from a start state.
package automaton

import (
	"sort"
	"strconv"
	"strings"
)

// DottedItem is a production with a dot marking parser progress, carrying
// lookahead only in LR(1)/LALR mode. It names symbols by name rather than
// index so it is independent of any one grammar's dense numbering; Grammar
// lookups are done by the caller (Automaton construction) when FIRST/FOLLOW
// need consulting.
//
// Equality is structural over all four fields; the lookahead is absent
// (nil) for LR(0) and a non-empty sorted slice for LR(1)/LALR.
type DottedItem struct {
	Left      string
	Right     []string
	Position  int
	Lookahead []string // nil for LR0; sorted, deduplicated otherwise
}

// epsilonName is the symbol name treated as the empty right-hand side
// marker; dot positions skip over it on construction and advance, matching
// spec.md's "dot position is normalized to skip over ε symbols".
const epsilonName = "ε"

// NewDottedItem builds a dotted item with the dot at position 0, normalized
// forward past any leading ε entries in right (in practice right is either
// empty of ε or the singleton [ε], per the empty-production convention).
func NewDottedItem(left string, right []string, lookahead []string) DottedItem {
	pos := skipEpsilon(right, 0)
	return DottedItem{
		Left:      left,
		Right:     right,
		Position:  pos,
		Lookahead: sortedCopy(lookahead),
	}
}

func skipEpsilon(right []string, pos int) int {
	for pos < len(right) && right[pos] == epsilonName {
		pos++
	}
	return pos
}

func sortedCopy(s []string) []string {
	if s == nil {
		return nil
	}
	cp := append([]string(nil), s...)
	sort.Strings(cp)
	return dedupSorted(cp)
}

func dedupSorted(s []string) []string {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// AtDot returns the symbol immediately after the dot, and whether one
// exists (false at a fully-reduced item).
func (d DottedItem) AtDot() (string, bool) {
	if d.Position >= len(d.Right) {
		return "", false
	}
	return d.Right[d.Position], true
}

// Advance returns the item with the dot moved past the symbol currently
// after it, skipping any further ε entries. It does not check that a symbol
// follows the dot: at the end, the returned position lies past the end of
// Right. Callers check AtDot first.
func (d DottedItem) Advance() DottedItem {
	next := d
	next.Position = skipEpsilon(d.Right, d.Position+1)
	return next
}

// Beta returns the symbols after the one immediately following the dot
// (i.e. Right[Position+1:]), used when computing inherited lookahead during
// closure.
func (d DottedItem) Beta() []string {
	if d.Position+1 >= len(d.Right) {
		return nil
	}
	return d.Right[d.Position+1:]
}

// key is the canonical encoding used for equality, sorting, and set
// deduplication.
func (d DottedItem) key() string {
	var sb strings.Builder
	sb.WriteString(d.Left)
	sb.WriteByte(0)
	sb.WriteString(strings.Join(d.Right, "\x01"))
	sb.WriteByte(0)
	sb.WriteString(strconv.Itoa(d.Position))
	sb.WriteByte(0)
	sb.WriteString(strings.Join(d.Lookahead, "\x01"))
	return sb.String()
}

// Equal reports structural equality over all four fields.
func (d DottedItem) Equal(o DottedItem) bool {
	return d.key() == o.key()
}

// Less implements the lexicographic order of spec.md 4.5: (left,
// right-sequence, position, lookahead).
func (d DottedItem) Less(o DottedItem) bool {
	if d.Left != o.Left {
		return d.Left < o.Left
	}
	if c := compareStrings(d.Right, o.Right); c != 0 {
		return c < 0
	}
	if d.Position != o.Position {
		return d.Position < o.Position
	}
	return compareStrings(d.Lookahead, o.Lookahead) < 0
}

func compareStrings(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// String renders the item as "Left -> α . β, lookahead", for plain-text and
// debug output.
func (d DottedItem) String() string {
	left := strings.Join(d.Right[:d.Position], " ")
	right := strings.Join(d.Right[d.Position:], " ")
	var sb strings.Builder
	sb.WriteString(d.Left)
	sb.WriteString(" -> ")
	if left != "" {
		sb.WriteString(left)
		sb.WriteByte(' ')
	}
	sb.WriteByte('.')
	if right != "" {
		sb.WriteByte(' ')
		sb.WriteString(right)
	}
	if d.Lookahead != nil {
		sb.WriteString(", ")
		sb.WriteString(strings.Join(d.Lookahead, "/"))
	}
	return sb.String()
}

// sortItems sorts a slice of DottedItem in place by Less.
func sortItems(items []DottedItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Less(items[j]) })
}

// dedupItemsSorted merges structurally equal items in an already-sorted
// slice, keeping the slice sorted.
func dedupItemsSorted(items []DottedItem) []DottedItem {
	if len(items) == 0 {
		return items
	}
	out := items[:1]
	for _, it := range items[1:] {
		if !it.Equal(out[len(out)-1]) {
			out = append(out, it)
		}
	}
	return out
}
