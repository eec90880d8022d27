package grammar

import (
	"strings"

	"github.com/dhollis/grammatica/internal/gmerrors"
)

// Parse reads the line-based grammar text format described in spec.md
// section 6 and returns a Grammar with the start symbol set to the first
// nonterminal encountered. Blank lines are ignored. A line containing "->"
// defines productions for the left-hand nonterminal named by the
// whitespace-trimmed prefix; the suffix is a "|"-separated list of
// alternatives, each a whitespace-separated list of symbol names. A line
// whose trimmed form begins with "|" continues the previous left-hand
// side. The literal symbol "ε" denotes the empty right-hand side; "$" is
// reserved for end-of-input and may not appear in user-written
// productions.
//
// Grounded on the distilled original's src/grammar/parse.rs, which this
// mirrors line for line; ported to Go's explicit multi-value error style.
func Parse(text string) (*Grammar, error) {
	g := New()

	type rawProduction struct {
		lhs    int
		rights string
	}
	var raws []rawProduction

	var previousLeft int = -1

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "->")
		if len(parts) > 2 {
			return nil, gmerrors.Syntax(lineNo, "too many \"->\"")
		}

		var lhs int
		var rights string

		if len(parts) == 2 {
			leftStr := strings.TrimSpace(parts[0])
			if leftStr == "" {
				return nil, gmerrors.Syntax(lineNo, "empty left side")
			}
			if len(strings.Fields(leftStr)) != 1 {
				return nil, gmerrors.Syntax(lineNo, "left side contains whitespace")
			}

			if idx, ok := g.Resolve(leftStr); ok {
				lhs = idx
			} else {
				lhs = g.AddNonTerminal(leftStr)
			}
			rights = strings.TrimSpace(parts[1])
		} else {
			trimmed := strings.TrimSpace(parts[0])
			if !strings.HasPrefix(trimmed, "|") {
				return nil, gmerrors.Syntax(lineNo, "cannot find left side")
			}
			if previousLeft < 0 {
				return nil, gmerrors.Syntax(lineNo, "cannot find left side")
			}
			lhs = previousLeft
			rights = strings.TrimSpace(trimmed[1:])
		}

		previousLeft = lhs
		raws = append(raws, rawProduction{lhs: lhs, rights: rights})
	}

	for _, raw := range raws {
		for _, alt := range strings.Split(raw.rights, "|") {
			var rhs []int
			for _, sym := range strings.Fields(alt) {
				if sym == Epsilon {
					rhs = append(rhs, EpsilonIndex)
					continue
				}
				if idx, ok := g.Resolve(sym); ok {
					rhs = append(rhs, idx)
				} else {
					rhs = append(rhs, g.AddTerminal(sym))
				}
			}
			if len(rhs) == 0 {
				// a bare "|" alternative with nothing after it behaves as
				// the empty production.
				rhs = []int{EpsilonIndex}
			}
			if err := g.AddProduction(raw.lhs, rhs); err != nil {
				return nil, err
			}
		}
	}

	if nts := g.NonTerminals(); len(nts) > 0 {
		g.SetStart(nts[0])
	}

	return g, nil
}
