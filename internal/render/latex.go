package render

import (
	"fmt"
	"strings"

	"github.com/dhollis/grammatica/internal/automaton"
	"github.com/dhollis/grammatica/internal/grammar"
)

// ProductionsLaTeX renders a grammar's productions as an itemize-free
// "array" environment, one row per nonterminal, suited for embedding in
// lecture notes the way a textbook typesets a grammar.
func ProductionsLaTeX(g *grammar.Grammar) string {
	var sb strings.Builder
	sb.WriteString("\\begin{array}{rl}\n")
	for _, ntIdx := range g.NonTerminals() {
		nt := g.NT(ntIdx)
		alts := make([]string, len(nt.Productions))
		for i, prod := range nt.Productions {
			alts[i] = escapeLaTeX(renderProduction(g, prod))
		}
		fmt.Fprintf(&sb, "  %s &\\to %s \\\\\n", escapeLaTeX(nt.Name), strings.Join(alts, " \\mid "))
	}
	sb.WriteString("\\end{array}\n")
	return sb.String()
}

// LRTableLaTeX renders the ACTION/GOTO table as a LaTeX tabular, with
// conflicting cells wrapped in \\fbox so they stand out in rendered output.
func LRTableLaTeX(a *automaton.Automaton, g *grammar.Grammar, t *automaton.Table) string {
	terms := g.Terminals()
	nts := g.NonTerminals()

	var sb strings.Builder
	cols := strings.Repeat("c", 1+len(terms)+len(nts))
	fmt.Fprintf(&sb, "\\begin{tabular}{%s}\n", cols)

	headerCells := []string{"State"}
	for _, term := range terms {
		headerCells = append(headerCells, escapeLaTeX(g.SymbolName(term)))
	}
	for _, ntIdx := range nts {
		headerCells = append(headerCells, escapeLaTeX(g.SymbolName(ntIdx)))
	}
	fmt.Fprintf(&sb, "%s \\\\\n\\hline\n", strings.Join(headerCells, " & "))

	for state := 0; state < t.States; state++ {
		cells := []string{fmt.Sprintf("%d", state)}
		for _, term := range terms {
			acts := t.ActionsAt(state, g.SymbolName(term))
			cell := escapeLaTeX(cellFor(acts))
			if len(acts) > 1 {
				cell = "\\fbox{" + cell + "}"
			}
			cells = append(cells, cell)
		}
		for _, ntIdx := range nts {
			target := t.GotoAt(state, g.SymbolName(ntIdx))
			if target < 0 {
				cells = append(cells, "")
			} else {
				cells = append(cells, fmt.Sprintf("%d", target))
			}
		}
		fmt.Fprintf(&sb, "%s \\\\\n", strings.Join(cells, " & "))
	}

	sb.WriteString("\\end{tabular}\n")
	return sb.String()
}

var latexSpecial = map[rune]string{
	'&': "\\&", '%': "\\%", '$': "\\$", '#': "\\#",
	'_': "\\_", '{': "\\{", '}': "\\}", '~': "\\textasciitilde{}",
	'^': "\\textasciicircum{}",
}

func escapeLaTeX(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if esc, ok := latexSpecial[r]; ok {
			sb.WriteString(esc)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
