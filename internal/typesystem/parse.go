package typesystem

import "strings"

var builtinTypes = map[string]Type{
	"Nothing":  Nothing,
	"Anything": Anything,
	"Nil":      Nil,
	"True":     True,
	"False":    False,
	"Bool":     Bool,
	"Int":      Int,
	"Float":    Float,
	"String":   String,
	"Function": Function,
}

// Lookup returns the built-in type with the given name.
func Lookup(name string) (Type, bool) {
	t, ok := builtinTypes[name]
	return t, ok
}

// Parse reads a type written as built-in names joined by "|",
// e.g. "Int | Nil".
func Parse(s string) (Type, error) {
	var members []Type
	for _, part := range strings.Split(s, "|") {
		name := strings.TrimSpace(part)
		t, ok := Lookup(name)
		if !ok {
			return nil, NewUnknownTypeError(name)
		}
		members = append(members, t)
	}
	return NormalizeUnion(members), nil
}
