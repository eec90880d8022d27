package gramutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IntSet_AddAndSorted(t *testing.T) {
	assert := assert.New(t)

	s := NewIntSet(3, 1, 2)
	assert.Equal([]int{1, 2, 3}, s.Sorted())
	assert.True(s.Has(2))
	assert.False(s.Has(9))

	assert.True(s.Add(9))
	assert.False(s.Add(9))
}

func Test_IntSet_AddAllAndEqual(t *testing.T) {
	assert := assert.New(t)

	a := NewIntSet(1, 2)
	b := NewIntSet(2, 3)

	changed := a.AddAll(b)
	assert.True(changed)
	assert.Equal([]int{1, 2, 3}, a.Sorted())

	assert.True(a.Equal(NewIntSet(1, 2, 3)))
	assert.False(a.Equal(NewIntSet(1, 2)))
}

func Test_IntSet_Copy_Independent(t *testing.T) {
	assert := assert.New(t)

	a := NewIntSet(1, 2)
	b := a.Copy()
	b.Add(3)

	assert.False(a.Has(3))
	assert.True(b.Has(3))
}

func Test_StringSet_Sorted(t *testing.T) {
	assert := assert.New(t)

	s := NewStringSet("c", "a", "b")
	assert.Equal([]string{"a", "b", "c"}, s.Sorted())
}

func Test_OrderedKeys(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal([]string{"a", "b", "c"}, OrderedKeys(m))
}
