package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_EliminateLeftRecursion(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id")
	if !assert.NoError(err) {
		return
	}

	g.EliminateLeftRecursion()

	for _, ntIdx := range g.NonTerminals() {
		nt := g.NT(ntIdx)
		for _, prod := range nt.Productions {
			if len(prod) > 0 {
				assert.NotEqual(ntIdx, prod[0], "production of %q begins with itself after elimination", nt.Name)
			}
		}
	}

	_, hasEPrime := g.Resolve("E'")
	_, hasTPrime := g.Resolve("T'")
	assert.True(hasEPrime)
	assert.True(hasTPrime)
}

func Test_Grammar_EliminateLeftRecursion_Idempotent(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id")
	if !assert.NoError(err) {
		return
	}

	g.EliminateLeftRecursion()
	countAfterFirst := g.SymbolCount()

	g.EliminateLeftRecursion()
	countAfterSecond := g.SymbolCount()

	assert.Equal(countAfterFirst, countAfterSecond)
}

func Test_Grammar_EliminateLeftRecursion_FreshPrimeCollision(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("A -> A a | b\nA' -> c")
	if !assert.NoError(err) {
		return
	}

	g.EliminateLeftRecursion()

	_, hasDoublePrime := g.Resolve("A''")
	assert.True(hasDoublePrime, "expected fresh nonterminal A'' to avoid colliding with existing A'")

	existingIdx, ok := g.Resolve("A'")
	if !assert.True(ok, "existing A' must be preserved") {
		return
	}
	assert.Len(g.NT(existingIdx).Productions, 1)
}

func Test_Grammar_EliminateLeftRecursion_NoDirectRecursion(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("S -> a S | b")
	if !assert.NoError(err) {
		return
	}

	before := g.SymbolCount()
	g.EliminateLeftRecursion()
	assert.Equal(before, g.SymbolCount())
}
