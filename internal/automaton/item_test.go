package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewDottedItem_Normalization(t *testing.T) {
	assert := assert.New(t)

	it := NewDottedItem("A", []string{"ε"}, nil)
	assert.Equal(1, it.Position)
	_, ok := it.AtDot()
	assert.False(ok)
}

func Test_DottedItem_AdvanceAndBeta(t *testing.T) {
	assert := assert.New(t)

	it := NewDottedItem("A", []string{"a", "b", "c"}, nil)
	sym, ok := it.AtDot()
	assert.True(ok)
	assert.Equal("a", sym)
	assert.Equal([]string{"b", "c"}, it.Beta())

	next := it.Advance()
	assert.Equal(1, next.Position)
	sym, ok = next.AtDot()
	assert.True(ok)
	assert.Equal("b", sym)
}

func Test_DottedItem_Equal(t *testing.T) {
	assert := assert.New(t)

	a := NewDottedItem("A", []string{"a", "b"}, []string{"x", "y"})
	b := NewDottedItem("A", []string{"a", "b"}, []string{"y", "x"})
	assert.True(a.Equal(b))

	c := NewDottedItem("A", []string{"a", "b"}, []string{"x"})
	assert.False(a.Equal(c))
}

func Test_DottedItem_Less_Ordering(t *testing.T) {
	assert := assert.New(t)

	items := []DottedItem{
		NewDottedItem("B", []string{"a"}, nil),
		NewDottedItem("A", []string{"a"}, nil),
		NewDottedItem("A", []string{"a", "b"}, nil),
	}
	sortItems(items)
	assert.Equal("A", items[0].Left)
	assert.Equal("A", items[1].Left)
	assert.Equal("B", items[2].Left)
	assert.Less(len(items[0].Right), len(items[1].Right))
}

func Test_DottedItem_String(t *testing.T) {
	assert := assert.New(t)

	it := NewDottedItem("S", []string{"a", "b"}, []string{"$"})
	s := it.String()
	assert.Contains(s, "S -> . a b")
	assert.Contains(s, "$")
}
