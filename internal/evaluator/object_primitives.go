package evaluator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arrdem/kiss/internal/typesystem"
)

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

// RuntimeType is the singleton type of the value, so a constant true is
// statically known to be truthy.
func (b *Boolean) RuntimeType() typesystem.Type {
	if b != nil && b.Value {
		return typesystem.True
	}
	return typesystem.False
}
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType             { return INTEGER_OBJ }
func (i *Integer) Inspect() string              { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) RuntimeType() typesystem.Type { return typesystem.Int }
func (i *Integer) Hash() uint32 {
	return uint32(i.Value ^ (i.Value >> 32))
}

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType             { return FLOAT_OBJ }
func (f *Float) Inspect() string              { return fmt.Sprintf("%g", f.Value) }
func (f *Float) RuntimeType() typesystem.Type { return typesystem.Float }
func (f *Float) Hash() uint32 {
	bits := math.Float64bits(f.Value)
	return uint32(bits ^ (bits >> 32))
}

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType             { return STRING_OBJ }
func (s *String) Inspect() string              { return strconv.Quote(s.Value) }
func (s *String) RuntimeType() typesystem.Type { return typesystem.String }
func (s *String) Hash() uint32                 { return hashString(s.Value) }

// Nil
type Nil struct{}

func (n *Nil) Type() ObjectType             { return NIL_OBJ }
func (n *Nil) Inspect() string              { return "nil" }
func (n *Nil) RuntimeType() typesystem.Type { return typesystem.Nil }
func (n *Nil) Hash() uint32                 { return 0 }
