package ast

import (
	"io"
	"testing"

	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/stretchr/testify/require"
)

var builtins = evaluator.NewBuiltins(io.Discard)

func intc(n int64) *Constant  { return NewConstant(&evaluator.Integer{Value: n}) }
func strc(s string) *Constant { return NewConstant(&evaluator.String{Value: s}) }
func ref(s string) *Reference { return NewReference(evaluator.Symbol(s)) }

func call(name string, args ...Expression) *Application {
	return NewApplication(NewConstant(builtins[name]), args...)
}

// counted returns a builtin that counts its calls and returns the count.
func counted(name string, pure bool) (*evaluator.Builtin, *int) {
	calls := 0
	return &evaluator.Builtin{
		Name:  name,
		Arity: -1,
		Pure:  pure,
		Fn: func(args ...evaluator.Object) (evaluator.Object, error) {
			calls++
			return &evaluator.Integer{Value: int64(calls)}, nil
		},
	}, &calls
}

func bind(pairs ...interface{}) evaluator.Bindings {
	b := evaluator.EmptyBindings()
	for i := 0; i < len(pairs); i += 2 {
		var value evaluator.Object
		switch v := pairs[i+1].(type) {
		case int:
			value = &evaluator.Integer{Value: int64(v)}
		case string:
			value = &evaluator.String{Value: v}
		case bool:
			value = evaluator.NativeBool(v)
		case evaluator.Object:
			value = v
		}
		b = b.Assoc(evaluator.Symbol(pairs[i].(string)), value)
	}
	return b
}

func run(t *testing.T, e Expression, bindings evaluator.Bindings) evaluator.Object {
	t.Helper()
	value, err := Execute(e, evaluator.NewEnvironment(), bindings)
	require.NoError(t, err)
	return value
}

func requireInt(t *testing.T, want int64, got evaluator.Object) {
	t.Helper()
	i, ok := got.(*evaluator.Integer)
	require.True(t, ok, "expected an integer, got %s", got.Inspect())
	require.Equal(t, want, i.Value)
}

func union(types ...typesystem.Type) typesystem.Type {
	return typesystem.NormalizeUnion(types)
}
