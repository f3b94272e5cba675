package evaluator

import (
	"fmt"
	"github.com/arrdem/kiss/internal/typesystem"
)

// Callable is any value an application node can invoke.
type Callable interface {
	Object
	Apply(args []Object) (Object, error)
}

// Builtin Function
type BuiltinFunction func(args ...Object) (Object, error)

// Builtin is a host-provided function.
type Builtin struct {
	Fn    BuiltinFunction
	Name  string // Name of the builtin
	Arity int    // Number of arguments, or -1 for variadic
	// Pure builtins have no observable effect and always return the same
	// value for the same arguments, so calls on constants may be folded.
	Pure bool
	// Result is the declared type of every value Fn returns, nil if unknown.
	Result typesystem.Type
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *Builtin) RuntimeType() typesystem.Type {
	return typesystem.Function
}
func (b *Builtin) Hash() uint32 {
	return hashString(b.Name)
}

func (b *Builtin) Apply(args []Object) (Object, error) {
	if b.Arity >= 0 && len(args) != b.Arity {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", b.Name, b.Arity, len(args))
	}
	result, err := b.Fn(args...)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return NIL, nil
	}
	return result, nil
}

// ResultType returns the declared result type of a callable value, if the
// host declared one.
func ResultType(o Object) (typesystem.Type, bool) {
	if b, ok := o.(*Builtin); ok && b.Result != nil {
		return b.Result, true
	}
	return nil, false
}
