package grammar

import "strings"

// RenderProductions renders the grammar back to the text form Parse
// accepts: one "LHS -> alt1 | alt2 | ..." line per nonterminal, in
// insertion order, excluding ε. This is the inverse of Parse, used by the
// round-trip test property in spec.md section 8 and by the "prod" plain
// output adapter.
func (g *Grammar) RenderProductions() string {
	var sb strings.Builder
	nts := g.NonTerminals()
	for i, ntIdx := range nts {
		nt := g.NT(ntIdx)
		sb.WriteString(nt.Name)
		sb.WriteString(" -> ")
		for j, prod := range nt.Productions {
			if j > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(g.renderProduction(prod))
		}
		if i+1 < len(nts) {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (g *Grammar) renderProduction(prod Production) string {
	names := make([]string, len(prod))
	for i, sym := range prod {
		names[i] = g.SymbolName(sym)
	}
	return strings.Join(names, " ")
}
