// Package binding defines the host-language JSON contract described in
// spec.md section 6: a Request naming the grammar text, the actions to
// apply, and a list of independently-formatted outputs to compute, and a
// Run that reports one rendered-or-errored result per requested output.
// It mirrors cmd/grammatica/main.go's own per-output loop, so a caller can
// request several outputs in one round trip and get independent
// success/failure per output instead of one result for the whole request.
package binding

import (
	"encoding/json"
	"fmt"

	"github.com/dhollis/grammatica/internal/automaton"
	"github.com/dhollis/grammatica/internal/grammar"
	"github.com/dhollis/grammatica/internal/render"
)

// Mode names the lookahead regime requested for automaton construction, the
// JSON-facing counterpart of automaton.Mode. It is only meaningful on an
// OutputSpec whose Kind is "fsm" or "table".
type Mode string

const (
	ModeLR0  Mode = "lr0"
	ModeLR1  Mode = "lr1"
	ModeLALR Mode = "lalr"
)

func (m Mode) toAutomaton() automaton.Mode {
	switch m {
	case ModeLR1:
		return automaton.LR1
	case ModeLALR:
		return automaton.LALR
	default:
		return automaton.LR0
	}
}

// Format names the rendering to apply to an output, the JSON-facing
// counterpart of the CLI's -l/-j flags.
type Format string

const (
	FormatText  Format = "text"
	FormatLaTeX Format = "latex"
	FormatJSON  Format = "json"
)

// OutputSpec names one artifact to compute: Kind is one of "prod", "nff",
// "ll1", "fsm", or "table"; Format selects plain text (the default), LaTeX,
// or JSON (LaTeX applies only to "prod" and "table"; the other kinds render
// plain text for it); Mode selects the automaton's lookahead regime and is
// ignored outside Kind "fsm"/"table".
type OutputSpec struct {
	Kind   string `json:"kind"`
	Format Format `json:"format,omitempty"`
	Mode   Mode   `json:"mode,omitempty"`
}

// Request is the input to Run: the grammar source text, the actions to
// apply before computing any output (currently only "elf", mirroring the
// CLI's action vocabulary), and the outputs to compute.
type Request struct {
	Grammar string       `json:"grammar"`
	Actions []string     `json:"actions,omitempty"`
	Outputs []OutputSpec `json:"outputs"`
}

// OutputResult is one entry of Run's return value: exactly one of Rendered
// or Error is set.
type OutputResult struct {
	Rendered string `json:"rendered,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Run parses req.Grammar, applies req.Actions, and renders each of
// req.Outputs independently, returning one OutputResult per requested
// output in the same order. A failure that applies to every output (a
// grammar that fails to parse) is reported once per output so the
// returned slice always has len(req.Outputs) entries; a failure specific
// to one output (an undefined start symbol only discovered while building
// that output's automaton) is reported only on that output's entry.
func Run(req Request) []OutputResult {
	g, err := grammar.Parse(req.Grammar)
	if err != nil {
		return errorForEach(req.Outputs, err)
	}

	for _, act := range req.Actions {
		if act == "elf" {
			g.EliminateLeftRecursion()
		}
	}

	results := make([]OutputResult, len(req.Outputs))
	for i, out := range req.Outputs {
		results[i] = renderOutput(g, out)
	}
	return results
}

func errorForEach(outputs []OutputSpec, err error) []OutputResult {
	results := make([]OutputResult, len(outputs))
	for i := range results {
		results[i] = OutputResult{Error: err.Error()}
	}
	return results
}

func renderOutput(g *grammar.Grammar, out OutputSpec) OutputResult {
	if out.Kind == "prod" {
		switch out.Format {
		case FormatJSON:
			return jsonResult(render.BuildReport(g, nil, nil))
		case FormatLaTeX:
			return OutputResult{Rendered: render.ProductionsLaTeX(g)}
		default:
			return OutputResult{Rendered: render.Productions(g)}
		}
	}

	if err := g.EnsureValid(); err != nil {
		return OutputResult{Error: err.Error()}
	}

	switch out.Kind {
	case "nff":
		if out.Format == FormatJSON {
			return jsonResult(render.BuildReport(g, nil, nil))
		}
		return OutputResult{Rendered: render.NFF(g)}

	case "ll1":
		table := g.BuildLL1Table()
		if out.Format == FormatJSON {
			return jsonResult(render.BuildReport(g, nil, nil))
		}
		return OutputResult{Rendered: render.LL1(g, table)}

	case "fsm":
		a, err := automaton.Build(g, out.Mode.toAutomaton())
		if err != nil {
			return OutputResult{Error: err.Error()}
		}
		if out.Format == FormatJSON {
			return jsonResult(render.BuildReport(g, a, nil))
		}
		return OutputResult{Rendered: render.Automaton(a)}

	case "table":
		a, err := automaton.Build(g, out.Mode.toAutomaton())
		if err != nil {
			return OutputResult{Error: err.Error()}
		}
		t := automaton.Derive(a, g)
		switch out.Format {
		case FormatJSON:
			return jsonResult(render.BuildReport(g, a, t))
		case FormatLaTeX:
			return OutputResult{Rendered: render.LRTableLaTeX(a, g, t)}
		default:
			return OutputResult{Rendered: render.LRTable(a, g, t)}
		}

	default:
		return OutputResult{Error: fmt.Sprintf("unknown output kind %q", out.Kind)}
	}
}

func jsonResult(report render.Report) OutputResult {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return OutputResult{Error: err.Error()}
	}
	return OutputResult{Rendered: string(data)}
}
