package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func namesOf(g *Grammar, idxs []int) []string {
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.SymbolName(idx)
	}
	return out
}

func Test_Grammar_EnsureValid_ExpressionGrammar(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id")
	if !assert.NoError(err) {
		return
	}

	g.EliminateLeftRecursion()
	assert.NoError(g.EnsureValid())

	eIdx, _ := g.Resolve("E")
	tIdx, _ := g.Resolve("T")
	fIdx, _ := g.Resolve("F")

	assert.ElementsMatch([]string{"(", "id"}, namesOf(g, g.NT(eIdx).First.Sorted()))
	assert.ElementsMatch([]string{"(", "id"}, namesOf(g, g.NT(tIdx).First.Sorted()))
	assert.ElementsMatch([]string{"(", "id"}, namesOf(g, g.NT(fIdx).First.Sorted()))

	assert.ElementsMatch([]string{")", "$"}, namesOf(g, g.NT(eIdx).Follow.Sorted()))
	assert.ElementsMatch([]string{"+", ")", "$"}, namesOf(g, g.NT(tIdx).Follow.Sorted()))
	assert.ElementsMatch([]string{"+", "*", ")", "$"}, namesOf(g, g.NT(fIdx).Follow.Sorted()))
}

func Test_Grammar_EnsureValid_Idempotent(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("S -> A B\nA -> a | ε\nB -> b | ε")
	if !assert.NoError(err) {
		return
	}

	assert.NoError(g.EnsureValid())
	sIdx, _ := g.Resolve("S")
	firstBefore := g.NT(sIdx).First.Copy()
	followBefore := g.NT(sIdx).Follow.Copy()

	assert.NoError(g.EnsureValid())
	assert.True(firstBefore.Equal(g.NT(sIdx).First))
	assert.True(followBefore.Equal(g.NT(sIdx).Follow))
}

func Test_Grammar_EnsureValid_NullablePropagation(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("S -> A B\nA -> a | ε\nB -> b | ε")
	if !assert.NoError(err) {
		return
	}
	assert.NoError(g.EnsureValid())

	sIdx, _ := g.Resolve("S")
	aIdx, _ := g.Resolve("A")
	bIdx, _ := g.Resolve("B")

	assert.True(g.NT(aIdx).Nullable)
	assert.True(g.NT(bIdx).Nullable)
	assert.True(g.NT(sIdx).Nullable)
}

func Test_Grammar_EnsureValid_NoStart(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddTerminal("a")
	err := g.EnsureValid()
	assert.Error(err)
}
