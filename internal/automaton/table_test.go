package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhollis/grammatica/internal/grammar"
)

func Test_Derive_AcceptOnAugmentedReduction(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("S -> a")
	if !assert.NoError(err) {
		return
	}

	a, err := Build(g, LR0)
	if !assert.NoError(err) {
		return
	}
	table := Derive(a, g)

	acts := table.ActionsAt(a.End, grammar.EndMark)
	if !assert.Len(acts, 1) {
		return
	}
	assert.Equal(Accept, acts[0].Kind)
}

func Test_Derive_ShiftThenGoto(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("S -> a S | b")
	if !assert.NoError(err) {
		return
	}

	a, err := Build(g, LR0)
	if !assert.NoError(err) {
		return
	}
	table := Derive(a, g)

	acts := table.ActionsAt(a.Start, "a")
	if !assert.Len(acts, 1) {
		return
	}
	assert.Equal(Shift, acts[0].Kind)

	target := table.GotoAt(acts[0].Target, "S")
	assert.GreaterOrEqual(target, 0)
}

func Test_Table_Conflicts_EmptyOnUnambiguousGrammar(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("S -> a")
	if !assert.NoError(err) {
		return
	}
	a, err := Build(g, LR0)
	if !assert.NoError(err) {
		return
	}
	table := Derive(a, g)
	assert.Empty(table.Conflicts())
}
