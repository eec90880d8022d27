// Package render implements the plain-text, LaTeX, and JSON output adapters
// named in spec.md section 6. Every analysis artifact (productions,
// nullable/FIRST/FOLLOW, LL(1) table, item-set automata, LR tables) has a
// plain-text form. LaTeX forms exist only for productions and LR tables.
// The JSON Report carries symbols, productions and nullable/FIRST/FOLLOW,
// plus states and conflicts when an automaton or table is given; it has no
// LL(1) table. The plain-text tables are grounded on
// github.com/dekarrin/tunaq's internal/ictiobus/parse package, which builds
// its LR table dumps with github.com/dekarrin/rosed's InsertTableOpts.
package render

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dhollis/grammatica/internal/automaton"
	"github.com/dhollis/grammatica/internal/grammar"
)

var titleCaser = cases.Title(language.English)

// Productions renders a grammar's production rules as a titled plain-text
// block, delegating the actual rule text to Grammar.RenderProductions.
func Productions(g *grammar.Grammar) string {
	var sb strings.Builder
	sb.WriteString(titleCaser.String("productions"))
	sb.WriteString("\n\n")
	sb.WriteString(g.RenderProductions())
	sb.WriteString("\n")
	return sb.String()
}

// NFF renders the nullable/FIRST/FOLLOW table for every nonterminal as a
// rosed-formatted table with one row per nonterminal.
func NFF(g *grammar.Grammar) string {
	data := [][]string{{"NonTerminal", "Nullable", "FIRST", "FOLLOW"}}
	for _, ntIdx := range g.NonTerminals() {
		nt := g.NT(ntIdx)
		data = append(data, []string{
			nt.Name,
			fmt.Sprintf("%v", nt.Nullable),
			joinSymbolSet(g, nt.First.Sorted()),
			joinSymbolSet(g, nt.Follow.Sorted()),
		})
	}

	summary := fmt.Sprintf("%s nonterminals analyzed\n\n", humanize.Comma(int64(len(g.NonTerminals()))))
	return summary + rosed.Edit("").InsertTableOpts(0, data, 100, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}

func renderProduction(g *grammar.Grammar, prod grammar.Production) string {
	names := make([]string, len(prod))
	for i, sym := range prod {
		names[i] = g.SymbolName(sym)
	}
	return strings.Join(names, " ")
}

func joinSymbolSet(g *grammar.Grammar, idxs []int) string {
	names := make([]string, len(idxs))
	for i, idx := range idxs {
		names[i] = g.SymbolName(idx)
	}
	return strings.Join(names, ", ")
}

// LL1 renders the LL(1) predictive parsing table, marking conflicting
// cells with the count of alternatives they hold.
func LL1(g *grammar.Grammar, t *grammar.LL1Table) string {
	data := [][]string{}
	header := []string{"NT"}
	for _, term := range t.Terminals {
		header = append(header, g.SymbolName(term))
	}
	data = append(data, header)

	for _, ntIdx := range t.NonTerminals {
		row := []string{g.SymbolName(ntIdx)}
		for _, term := range t.Terminals {
			cell := t.Cell(ntIdx, term)
			switch len(cell) {
			case 0:
				row = append(row, "")
			case 1:
				row = append(row, renderProduction(g, cell[0]))
			default:
				row = append(row, fmt.Sprintf("CONFLICT(%d)", len(cell)))
			}
		}
		data = append(data, row)
	}

	conflictNote := ""
	if t.HasConflicts() {
		conflictNote = "warning: table has conflicts; grammar is not LL(1)\n\n"
	}

	return conflictNote + rosed.Edit("").InsertTableOpts(0, data, 140, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}

// Automaton renders the dotted items of every state in a, one titled
// section per state followed by its outgoing edges.
func Automaton(a *automaton.Automaton) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s item sets (%s states)\n\n", a.Mode, humanize.Comma(int64(len(a.States))))

	for i, s := range a.States {
		marker := ""
		if i == a.Start {
			marker = " (start)"
		}
		if i == a.End {
			marker = " (accept)"
		}
		fmt.Fprintf(&sb, "State %d%s\n", i, marker)
		for _, it := range s.Kernel {
			fmt.Fprintf(&sb, "  %s\n", it.String())
		}
		for _, it := range s.Closure {
			fmt.Fprintf(&sb, "  %s\n", it.String())
		}
		for _, sym := range sortedEdgeSymbols(s.Edges) {
			fmt.Fprintf(&sb, "  on %q -> state %d\n", sym, s.Edges[sym])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func sortedEdgeSymbols(edges map[string]int) []string {
	out := make([]string, 0, len(edges))
	for k := range edges {
		out = append(out, k)
	}
	sortStrings(out)
	return out
}

// LRTable renders the ACTION/GOTO table as a rosed table, ACTION columns
// followed by a separator column followed by GOTO columns, matching the
// teacher's slr/clr1/lalr String() layout.
func LRTable(a *automaton.Automaton, g *grammar.Grammar, t *automaton.Table) string {
	terms := g.Terminals()
	nts := g.NonTerminals()

	header := []string{"State"}
	for _, term := range terms {
		header = append(header, "A:"+g.SymbolName(term))
	}
	header = append(header, "|")
	for _, ntIdx := range nts {
		header = append(header, "G:"+g.SymbolName(ntIdx))
	}

	data := [][]string{header}
	for state := 0; state < t.States; state++ {
		row := []string{fmt.Sprintf("%d", state)}
		for _, term := range terms {
			row = append(row, cellFor(t.ActionsAt(state, g.SymbolName(term))))
		}
		row = append(row, "|")
		for _, ntIdx := range nts {
			target := t.GotoAt(state, g.SymbolName(ntIdx))
			if target < 0 {
				row = append(row, "")
			} else {
				row = append(row, fmt.Sprintf("%d", target))
			}
		}
		data = append(data, row)
	}

	conflicts := t.Conflicts()
	note := ""
	if len(conflicts) > 0 {
		note = fmt.Sprintf("warning: %s conflicts found\n\n", humanize.Comma(int64(len(conflicts))))
	}

	return note + rosed.Edit("").InsertTableOpts(0, data, 160, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}

func cellFor(actions []automaton.Action) string {
	if len(actions) == 0 {
		return ""
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		switch a.Kind {
		case automaton.Accept:
			parts[i] = "acc"
		case automaton.Shift:
			parts[i] = fmt.Sprintf("s%d", a.Target)
		case automaton.Reduce:
			parts[i] = fmt.Sprintf("r(%s -> %s)", a.Head, strings.Join(a.Production, " "))
		}
	}
	return strings.Join(parts, " / ")
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
