package evaluator

import (
	"github.com/arrdem/kiss/internal/typesystem"
)

// Mapping pairs an already computed value with its type.
type Mapping struct {
	Type  typesystem.Type
	Value Object
}

// ToEntry pairs the mapping with key.
func (m Mapping) ToEntry(key Symbol) Entry {
	return Entry{key: key, value: m.Value, typ: m.Type}
}

// Entry is an immutable key/value pair.
type Entry struct {
	key   Symbol
	value Object
	typ   typesystem.Type
}

func (e Entry) Key() Symbol           { return e.key }
func (e Entry) Value() Object         { return e.value }
func (e Entry) Type() typesystem.Type { return e.typ }

// SetValue always fails: entries cannot be mutated.
func (e Entry) SetValue(Object) (Object, error) {
	return nil, NewError(ErrImmutableEntry, "%s", e.key)
}
