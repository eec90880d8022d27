package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Run_SingleOutputGrammarOnly(t *testing.T) {
	assert := assert.New(t)

	results := Run(Request{
		Grammar: "S -> a",
		Outputs: []OutputSpec{{Kind: "prod"}},
	})
	if !assert.Len(results, 1) {
		return
	}
	assert.Empty(results[0].Error)
	assert.Contains(results[0].Rendered, "S")
}

func Test_Run_MultipleOutputsIndependentFormats(t *testing.T) {
	assert := assert.New(t)

	results := Run(Request{
		Grammar: "S -> a",
		Outputs: []OutputSpec{
			{Kind: "prod"},
			{Kind: "fsm", Mode: ModeLALR, Format: FormatJSON},
		},
	})
	if !assert.Len(results, 2) {
		return
	}
	assert.Empty(results[0].Error)
	assert.Empty(results[1].Error)
	assert.Contains(results[1].Rendered, "\"states\"")
}

func Test_Run_SyntaxErrorReportedOnEveryOutput(t *testing.T) {
	assert := assert.New(t)

	results := Run(Request{
		Grammar: "S -> a -> b",
		Outputs: []OutputSpec{{Kind: "prod"}, {Kind: "nff"}},
	})
	if !assert.Len(results, 2) {
		return
	}
	for _, r := range results {
		assert.NotEmpty(r.Error)
		assert.Empty(r.Rendered)
	}
}

func Test_Run_EliminatesLeftRecursionWhenRequested(t *testing.T) {
	assert := assert.New(t)

	results := Run(Request{
		Grammar: "E -> E + T | T\nT -> id",
		Actions: []string{"elf"},
		Outputs: []OutputSpec{{Kind: "nff", Format: FormatJSON}},
	})
	if !assert.Len(results, 1) {
		return
	}
	if !assert.Empty(results[0].Error) {
		return
	}
	assert.Contains(results[0].Rendered, "E'")
}

func Test_Run_OutputSpecificErrorDoesNotAffectOthers(t *testing.T) {
	assert := assert.New(t)

	results := Run(Request{
		Grammar: "S -> a",
		Outputs: []OutputSpec{
			{Kind: "bogus"},
			{Kind: "prod"},
		},
	})
	if !assert.Len(results, 2) {
		return
	}
	assert.NotEmpty(results[0].Error)
	assert.Empty(results[1].Error)
	assert.NotEmpty(results[1].Rendered)
}
