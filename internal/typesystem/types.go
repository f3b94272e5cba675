package typesystem

import (
	"sort"
	"strings"
)

// Type is the interface for all static types known to the expression core.
//
// Types only classify values for optimisation. They never reject programs:
// a type is a promise that every value an expression can produce is a member.
type Type interface {
	String() string
	// Union returns the smallest type containing both t and other.
	Union(other Type) Type
	// CannotBeFalsey reports that no member of the type is falsey.
	CannotBeFalsey() bool
	// CannotBeTruthy reports that no member of the type is truthy.
	CannotBeTruthy() bool
}

// TNothing is the bottom type. It has no members, so it is the type of
// expressions that never produce a value in their syntactic context (return).
type TNothing struct{}

func (TNothing) String() string        { return "Nothing" }
func (TNothing) Union(other Type) Type { return other }
func (TNothing) CannotBeFalsey() bool  { return true }
func (TNothing) CannotBeTruthy() bool  { return true }

// TAnything is the top type, used when nothing more specific is known.
type TAnything struct{}

func (TAnything) String() string       { return "Anything" }
func (TAnything) Union(Type) Type      { return Anything }
func (TAnything) CannotBeFalsey() bool { return false }
func (TAnything) CannotBeTruthy() bool { return false }

// TCon represents a named type constant (e.g. Int, Nil, True).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }

func (t TCon) Union(other Type) Type {
	return unionOf(t, other)
}

func (t TCon) CannotBeFalsey() bool {
	return !falseyNames[t.Name]
}

func (t TCon) CannotBeTruthy() bool {
	return falseyNames[t.Name]
}

// TUnion represents a union type (e.g. Int | Nil).
// Types are normalized: flattened, deduplicated, and sorted for comparison.
type TUnion struct {
	Types []Type // At least 2 types
}

func (t TUnion) String() string {
	parts := make([]string, 0, len(t.Types))
	for _, typ := range t.Types {
		parts = append(parts, typ.String())
	}
	return strings.Join(parts, " | ")
}

func (t TUnion) Union(other Type) Type {
	return unionOf(t, other)
}

func (t TUnion) CannotBeFalsey() bool {
	for _, typ := range t.Types {
		if !typ.CannotBeFalsey() {
			return false
		}
	}
	return true
}

func (t TUnion) CannotBeTruthy() bool {
	for _, typ := range t.Types {
		if !typ.CannotBeTruthy() {
			return false
		}
	}
	return true
}

var (
	Nothing  Type = TNothing{}
	Anything Type = TAnything{}

	Nil      = TCon{Name: "Nil"}
	True     = TCon{Name: "True"}
	False    = TCon{Name: "False"}
	Int      = TCon{Name: "Int"}
	Float    = TCon{Name: "Float"}
	String   = TCon{Name: "String"}
	Function = TCon{Name: "Function"}

	// Bool is not a constant of its own: it is exactly False | True.
	Bool = NormalizeUnion([]Type{False, True})
)

// falseyNames are the type constants whose members are all falsey.
var falseyNames = map[string]bool{
	Nil.Name:   true,
	False.Name: true,
}

func unionOf(a, b Type) Type {
	switch b.(type) {
	case TNothing:
		return a
	case TAnything:
		return Anything
	}
	return NormalizeUnion([]Type{a, b})
}

// NormalizeUnion creates a normalized union type.
// It flattens nested unions, removes duplicates, and sorts types.
func NormalizeUnion(types []Type) Type {
	// Flatten nested unions
	flat := []Type{}
	for _, t := range types {
		switch u := t.(type) {
		case TUnion:
			flat = append(flat, u.Types...)
		case TNothing:
			// identity
		case TAnything:
			return Anything
		default:
			flat = append(flat, t)
		}
	}

	if len(flat) == 0 {
		return Nothing
	}

	// Remove duplicates (using string representation for simplicity)
	seen := make(map[string]bool)
	unique := []Type{}
	for _, t := range flat {
		s := t.String()
		if !seen[s] {
			seen[s] = true
			unique = append(unique, t)
		}
	}

	// If only one type remains, return it directly
	if len(unique) == 1 {
		return unique[0]
	}

	// Sort for deterministic comparison
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].String() < unique[j].String()
	})

	return TUnion{Types: unique}
}

// Contains reports whether every member of sub is also a member of super.
func Contains(super, sub Type) bool {
	if super == nil || sub == nil {
		return false
	}
	switch s := sub.(type) {
	case TNothing:
		return true
	case TUnion:
		for _, member := range s.Types {
			if !Contains(super, member) {
				return false
			}
		}
		return true
	}

	switch p := super.(type) {
	case TAnything:
		return true
	case TNothing:
		return false
	case TUnion:
		for _, member := range p.Types {
			if Contains(member, sub) {
				return true
			}
		}
		return false
	case TCon:
		c, ok := sub.(TCon)
		return ok && c.Name == p.Name
	}
	return false
}

// Equal reports whether two types have the same members.
func Equal(a, b Type) bool {
	return Contains(a, b) && Contains(b, a)
}
