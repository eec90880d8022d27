/*
Grammatica analyzes a context-free grammar: nullable/FIRST/FOLLOW sets,
left-recursion elimination, LL(1) tables, and LR(0)/SLR(1)/LR(1)/LALR(1)
item-set automata and parsing tables.

Usage:

	grammatica [actions...] outputs... [options] [grammar-file]

Actions:

	elf
		Eliminate left recursion before running the requested outputs.

Outputs (one or more required):

	prod       productions, round-tripped through the renderer
	nff        nullable/FIRST/FOLLOW table
	ll1        LL(1) predictive parsing table
	lr0fsm     LR(0) item-set automaton
	lr1fsm     canonical LR(1) item-set automaton
	lalrfsm    LALR(1) item-set automaton
	lr0table   SLR(1) ACTION/GOTO table (FOLLOW-based reductions on the LR(0) automaton)
	lr1table   canonical LR(1) ACTION/GOTO table
	lalrtable  LALR(1) ACTION/GOTO table

Options:

	-h, --help
		Print this usage message and exit.
	-l, --latex
		Render the prod and lr0table/lr1table/lalrtable outputs in LaTeX
		instead of plain text. The nff, ll1 and *fsm outputs have no LaTeX
		form and are still rendered as plain text.
	-j, --json
		Render output as a single JSON report instead of plain text. The
		report lists symbols, productions and nullable/FIRST/FOLLOW, plus
		states and conflicts for automaton and table outputs; it does not
		contain the LL(1) table.

If no grammar-file is given, the grammar is read from standard input until
EOF; when standard input is a terminal, an interactive readline session is
used instead (see internal/repl).

Exit code 0 on success. Non-zero on grammar parse failure or automaton
construction failure (the latter occurs only when no start symbol is set,
which cannot happen via the text reader when at least one nonterminal was
given).
*/
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dhollis/grammatica/internal/automaton"
	"github.com/dhollis/grammatica/internal/config"
	"github.com/dhollis/grammatica/internal/gmerrors"
	"github.com/dhollis/grammatica/internal/grammar"
	"github.com/dhollis/grammatica/internal/render"
	"github.com/dhollis/grammatica/internal/repl"
)

const (
	ExitSuccess = iota
	ExitParseError
	ExitUsageError
)

var (
	flagHelp  = pflag.BoolP("help", "h", false, "Print usage and exit")
	flagLaTeX = pflag.BoolP("latex", "l", false, "Render output as LaTeX")
	flagJSON  = pflag.BoolP("json", "j", false, "Render output as a single JSON report")
)

var validOutputs = map[string]bool{
	"prod": true, "nff": true, "ll1": true,
	"lr0fsm": true, "lr1fsm": true, "lalrfsm": true,
	"lr0table": true, "lr1table": true, "lalrtable": true,
}

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagHelp {
		pflag.Usage()
		return ExitSuccess
	}

	var actions, outputs []string
	var grammarFile string

	for _, arg := range pflag.Args() {
		switch {
		case arg == "elf":
			actions = append(actions, arg)
		case validOutputs[arg]:
			outputs = append(outputs, arg)
		default:
			grammarFile = arg
		}
	}

	if len(outputs) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR! at least one output is required")
		return ExitUsageError
	}

	cfg, err := config.Load(config.FileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %s\n", err)
		return ExitUsageError
	}
	explicitFormat := pflag.CommandLine.Changed("latex") || pflag.CommandLine.Changed("json")
	if !explicitFormat && cfg.DefaultOutput == "latex" {
		*flagLaTeX = true
	}
	if !explicitFormat && cfg.DefaultOutput == "json" {
		*flagJSON = true
	}
	if !hasAction(actions, "elf") && cfg.EliminateLeftRecursion {
		actions = append(actions, "elf")
	}

	text, err := readGrammarText(grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %s\n", err)
		return ExitParseError
	}

	g, err := grammar.Parse(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %s\n", err)
		return ExitParseError
	}

	for _, a := range actions {
		if a == "elf" {
			g.EliminateLeftRecursion()
		}
	}

	status := ExitSuccess
	for i, out := range outputs {
		rendered, err := renderOutput(g, out)
		if err != nil {
			fmt.Printf("[%d] ERROR! %s\n", i, err)
			status = ExitParseError
			continue
		}
		fmt.Println(rendered)
	}

	return status
}

func hasAction(actions []string, name string) bool {
	for _, a := range actions {
		if a == name {
			return true
		}
	}
	return false
}

func readGrammarText(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", gmerrors.IO(path, err)
		}
		return string(data), nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		reader, err := repl.NewReader("grammar> ")
		if err != nil {
			return "", err
		}
		defer reader.Close()
		return reader.ReadGrammar()
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", gmerrors.IO("stdin", err)
	}
	return string(data), nil
}

func renderOutput(g *grammar.Grammar, kind string) (string, error) {
	if kind == "prod" {
		if *flagJSON {
			return jsonReport(g, nil, nil)
		}
		if *flagLaTeX {
			return render.ProductionsLaTeX(g), nil
		}
		return render.Productions(g), nil
	}

	if err := g.EnsureValid(); err != nil {
		return "", err
	}

	if kind == "nff" {
		if *flagJSON {
			return jsonReport(g, nil, nil)
		}
		return render.NFF(g), nil
	}

	if kind == "ll1" {
		table := g.BuildLL1Table()
		if *flagJSON {
			return jsonReport(g, nil, nil)
		}
		return render.LL1(g, table), nil
	}

	mode, isTable := modeFor(kind)
	a, err := automaton.Build(g, mode)
	if err != nil {
		return "", err
	}

	if !isTable {
		if *flagJSON {
			return jsonReport(g, a, nil)
		}
		return render.Automaton(a), nil
	}

	t := automaton.Derive(a, g)
	if *flagJSON {
		return jsonReport(g, a, t)
	}
	if *flagLaTeX {
		return render.LRTableLaTeX(a, g, t), nil
	}
	return render.LRTable(a, g, t), nil
}

func modeFor(kind string) (automaton.Mode, bool) {
	switch kind {
	case "lr0fsm":
		return automaton.LR0, false
	case "lr1fsm":
		return automaton.LR1, false
	case "lalrfsm":
		return automaton.LALR, false
	case "lr0table":
		return automaton.LR0, true
	case "lr1table":
		return automaton.LR1, true
	case "lalrtable":
		return automaton.LALR, true
	default:
		return automaton.LR0, false
	}
}

func jsonReport(g *grammar.Grammar, a *automaton.Automaton, t *automaton.Table) (string, error) {
	report := render.BuildReport(g, a, t)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
