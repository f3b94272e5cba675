package ast

import (
	"testing"

	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		subs Substitution
		want Expression
	}{
		{"reference", ref("x"), NewSubstitution("x", intc(1)), intc(1)},
		{"application", call("+", ref("x"), ref("y")), NewSubstitution("x", intc(1)), call("+", intc(1), ref("y"))},
		{"conditional", NewConditional(ref("x"), ref("x"), ref("y")),
			NewSubstitution("x", ref("z")), NewConditional(ref("z"), ref("z"), ref("y"))},
		{"binding value", NewBinding("x", ref("x"), ref("x")), NewSubstitution("x", intc(9)), NewBinding("x", intc(9), ref("x"))},
		{"binding body", NewBinding("x", intc(1), call("+", ref("x"), ref("y"))),
			NewSubstitution("y", intc(2)), NewBinding("x", intc(1), call("+", ref("x"), intc(2)))},
		{"return", NewReturn(ref("x")), NewSubstitution("x", intc(1)), NewReturn(intc(1))},
		{"cast", NewCast(typesystem.Int, ref("x")), NewSubstitution("x", intc(1)), NewCast(typesystem.Int, intc(1))},
		{"specialised", NewSpecialised(typesystem.Int, ref("x")), NewSubstitution("x", intc(1)), NewSpecialised(typesystem.Int, intc(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Substitute(tt.expr, tt.subs)
			require.True(t, ok)
			assert.True(t, Equal(tt.want, got), "got %#v", got)
		})
	}
}

func TestSubstitutePreservesIdentity(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		subs Substitution
	}{
		{"constant", intc(1), NewSubstitution("x", intc(2))},
		{"unrelated reference", ref("y"), NewSubstitution("x", intc(2))},
		{"unrelated application", call("+", ref("y"), intc(1)), NewSubstitution("x", intc(2))},
		{"empty substitution", call("+", ref("x"), intc(1)), EmptySubstitution()},
		{"shadowed", NewBinding("x", ref("y"), ref("x")), NewSubstitution("x", intc(9))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Substitute(tt.expr, tt.subs)
			require.True(t, ok)
			assert.Same(t, tt.expr, got)
		})
	}
}

func TestSubstituteAvoidsCapture(t *testing.T) {
	// (let [y 1] (+ x y)) with x := y would rebind the replacement's y.
	expr := NewBinding("y", intc(1), call("+", ref("x"), ref("y")))
	_, ok := Substitute(expr, NewSubstitution("x", ref("y")))
	assert.False(t, ok)

	// The same replacement is fine when the body never reads x.
	expr = NewBinding("y", intc(1), ref("y"))
	got, ok := Substitute(expr, NewSubstitution("x", ref("y")))
	require.True(t, ok)
	assert.Same(t, expr, got)

	// Failure propagates out of enclosing nodes.
	nested := call("+", intc(1), NewBinding("y", intc(1), call("+", ref("x"), ref("y"))))
	_, ok = Substitute(nested, NewSubstitution("x", ref("y")))
	assert.False(t, ok)
}

func TestSubstitutionIsPersistent(t *testing.T) {
	base := NewSubstitution("x", intc(1))
	extended := base.Assoc("y", intc(2))
	removed := extended.Without("x")

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())
	assert.Equal(t, 1, removed.Len())
	_, ok := removed.Lookup("x")
	assert.False(t, ok)
	_, ok = base.Lookup("y")
	assert.False(t, ok)

	items := extended.Items()
	require.Len(t, items, 2)
	assert.Equal(t, evaluator.Symbol("x"), items[0].Key)
	assert.Equal(t, evaluator.Symbol("y"), items[1].Key)
}

func TestFreeSymbols(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want []evaluator.Symbol
	}{
		{"constant", intc(1), nil},
		{"reference", ref("x"), []evaluator.Symbol{"x"}},
		{"application", NewApplication(ref("f"), ref("a"), call("+", ref("b"), intc(1))), []evaluator.Symbol{"a", "b", "f"}},
		{"conditional", NewConditional(ref("c"), ref("a"), ref("b")), []evaluator.Symbol{"a", "b", "c"}},
		{"binding body", NewBinding("x", intc(1), call("+", ref("x"), ref("y"))), []evaluator.Symbol{"y"}},
		// The value's own symbols are not reported.
		{"binding value", NewBinding("x", ref("v"), ref("x")), nil},
		{"return", NewReturn(ref("x")), []evaluator.Symbol{"x"}},
		{"cast", NewCast(typesystem.Int, ref("x")), []evaluator.Symbol{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeSymbols(tt.expr).Sorted()
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccumulateFreeSymbolsKeepsSiblings(t *testing.T) {
	// A sibling's x must survive a binding of x elsewhere in the tree.
	expr := NewApplication(ref("x"), NewBinding("x", intc(1), ref("x")))
	assert.Equal(t, []evaluator.Symbol{"x"}, FreeSymbols(expr).Sorted())

	acc := AccumulateFreeSymbols(NewBinding("x", intc(1), ref("y")), evaluator.NewSymbolSet("x"))
	assert.Equal(t, []evaluator.Symbol{"x", "y"}, acc.Sorted())
}
