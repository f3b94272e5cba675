package evaluator

import (
	"testing"

	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindings(t *testing.T) {
	outer := EmptyBindings().Assoc("x", &Integer{Value: 1})
	inner := outer.Assoc("x", &Integer{Value: 2}).Assoc("y", TRUE)

	v, ok := outer.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*Integer).Value)
	_, ok = outer.Lookup("y")
	assert.False(t, ok)

	v, _ = inner.Lookup("x")
	assert.Equal(t, int64(2), v.(*Integer).Value)
	assert.Equal(t, 2, inner.Len())
	assert.Equal(t, 1, inner.Without("y").Len())

	assert.Equal(t, "{x 2, y true}", inner.String())
}

func TestBindingsZeroValue(t *testing.T) {
	var b Bindings
	assert.Equal(t, 0, b.Len())
	_, ok := b.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 1, b.Assoc("x", NIL).Len())
}

func TestBindingsMerge(t *testing.T) {
	a := EmptyBindings().Assoc("x", &Integer{Value: 1}).Assoc("y", &Integer{Value: 1})
	b := EmptyBindings().Assoc("y", &Integer{Value: 2})
	merged := a.Merge(b)
	v, _ := merged.Lookup("y")
	assert.Equal(t, int64(2), v.(*Integer).Value)
	assert.Equal(t, 2, merged.Len())
}

func TestBindingEntriesAreImmutable(t *testing.T) {
	b := EmptyBindings().Assoc("s", &String{Value: "v"})
	entries := b.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, Symbol("s"), entries[0].Key())
	assert.Equal(t, "v", entries[0].Value().(*String).Value)
	assert.True(t, typesystem.Equal(typesystem.String, entries[0].Type()))

	_, err := entries[0].SetValue(NIL)
	assert.ErrorIs(t, err, ErrImmutableEntry)
}

func TestSymbolSet(t *testing.T) {
	s := NewSymbolSet("b", "a")
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Remove("a").Contains("a"))
	assert.True(t, s.Contains("a"))

	u := s.Union(NewSymbolSet("c", "a"))
	assert.Equal(t, []Symbol{"a", "b", "c"}, u.Sorted())
	assert.Equal(t, 2, s.Len())
	assert.Same(t, s.m, s.Add("a").m)
}
