package evaluator

import (
	"bytes"
	"testing"

	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, fn *Builtin, args ...Object) Object {
	t.Helper()
	result, err := fn.Apply(args)
	require.NoError(t, err)
	return result
}

func TestArithmetic(t *testing.T) {
	b := NewBuiltins(&bytes.Buffer{})
	tests := []struct {
		name string
		fn   string
		args []Object
		want Object
	}{
		{"add", "+", []Object{&Integer{Value: 1}, &Integer{Value: 2}}, &Integer{Value: 3}},
		{"sub", "-", []Object{&Integer{Value: 1}, &Integer{Value: 2}}, &Integer{Value: -1}},
		{"mul", "*", []Object{&Integer{Value: 3}, &Integer{Value: 4}}, &Integer{Value: 12}},
		{"div", "/", []Object{&Integer{Value: 7}, &Integer{Value: 2}}, &Integer{Value: 3}},
		{"float promotion", "+", []Object{&Integer{Value: 1}, &Float{Value: 0.5}}, &Float{Value: 1.5}},
		{"less", "<", []Object{&Integer{Value: 1}, &Float{Value: 1.5}}, TRUE},
		{"equal", "=", []Object{&String{Value: "a"}, &String{Value: "a"}}, TRUE},
		{"not equal kinds", "=", []Object{&Integer{Value: 1}, &Float{Value: 1}}, FALSE},
		{"not", "not", []Object{NIL}, TRUE},
		{"str", "str", []Object{&String{Value: "n="}, &Integer{Value: 4}, NIL}, &String{Value: "n=4nil"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, b[tt.fn], tt.args...)
			assert.True(t, ObjectsEqual(tt.want, got), "want %s, got %s", tt.want.Inspect(), got.Inspect())
		})
	}
}

func TestBuiltinFailures(t *testing.T) {
	b := NewBuiltins(&bytes.Buffer{})
	_, err := b["/"].Apply([]Object{&Integer{Value: 1}, &Integer{Value: 0}})
	assert.ErrorIs(t, err, errDivisionByZero)

	_, err = b["+"].Apply([]Object{&Integer{Value: 1}})
	assert.Error(t, err)

	_, err = b["+"].Apply([]Object{&Integer{Value: 1}, &String{Value: "x"}})
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	b := NewBuiltins(&out)
	result := apply(t, b["print"], &String{Value: "hello"}, &Integer{Value: 2})
	assert.Equal(t, NIL, result)
	assert.Equal(t, "hello 2\n", out.String())
}

func TestBuiltinPurity(t *testing.T) {
	b := NewBuiltins(&bytes.Buffer{})
	for name, fn := range b {
		assert.Equal(t, name != "print", IsPureFn(fn), name)
		assert.Equal(t, typesystem.Function, fn.RuntimeType())
		result, ok := ResultType(fn)
		assert.True(t, ok, name)
		assert.NotNil(t, result, name)
	}
	assert.False(t, IsPureFn(&Integer{Value: 1}))

	bindings := BuiltinBindings(&bytes.Buffer{})
	assert.Equal(t, len(b), bindings.Len())
	_, ok := bindings.Lookup("+")
	assert.True(t, ok)
}
