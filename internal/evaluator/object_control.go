package evaluator

import (
	"github.com/arrdem/kiss/internal/typesystem"
)

// ReturnValue wraps a value that is being returned prematurely.
// It only ever appears as the result of an exiting Environment.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }
func (rv *ReturnValue) RuntimeType() typesystem.Type {
	if rv == nil {
		return typesystem.Nothing
	}
	return rv.Value.RuntimeType()
}
func (rv *ReturnValue) Hash() uint32 { return rv.Value.Hash() }
