package evaluator

import "strings"

// Symbol names a variable.
type Symbol string

// Bindings is the immutable scope active during evaluation, mapping
// symbols to values. Extending a Bindings never alters the receiver.
type Bindings struct {
	m *PersistentMap[Object]
}

// EmptyBindings returns a scope with nothing bound.
func EmptyBindings() Bindings {
	return Bindings{m: EmptyMap[Object]()}
}

// Assoc returns a new scope in which sym is bound to value.
func (b Bindings) Assoc(sym Symbol, value Object) Bindings {
	return Bindings{m: b.m.Put(sym, value)}
}

// Without returns a new scope in which sym is unbound.
func (b Bindings) Without(sym Symbol) Bindings {
	return Bindings{m: b.m.Remove(sym)}
}

func (b Bindings) Lookup(sym Symbol) (Object, bool) {
	return b.m.Get(sym)
}

func (b Bindings) Len() int { return b.m.Len() }

// Merge returns b extended with every binding of other; other wins on conflict.
func (b Bindings) Merge(other Bindings) Bindings {
	out := b
	for _, item := range other.m.Items() {
		out = out.Assoc(item.Key, item.Value)
	}
	return out
}

// Entries exposes the bindings as immutable map entries, sorted by symbol.
func (b Bindings) Entries() []Entry {
	items := b.m.Items()
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Mapping{Type: item.Value.RuntimeType(), Value: item.Value}.ToEntry(item.Key)
	}
	return entries
}

func (b Bindings) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, item := range b.m.Items() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(item.Key))
		sb.WriteString(" ")
		sb.WriteString(item.Value.Inspect())
	}
	sb.WriteString("}")
	return sb.String()
}

// SymbolSet is an immutable set of symbols.
type SymbolSet struct {
	m *PersistentMap[struct{}]
}

func EmptySymbolSet() SymbolSet {
	return SymbolSet{m: EmptyMap[struct{}]()}
}

// NewSymbolSet builds a set holding the given symbols.
func NewSymbolSet(syms ...Symbol) SymbolSet {
	s := EmptySymbolSet()
	for _, sym := range syms {
		s = s.Add(sym)
	}
	return s
}

func (s SymbolSet) Add(sym Symbol) SymbolSet {
	if s.Contains(sym) {
		return s
	}
	return SymbolSet{m: s.m.Put(sym, struct{}{})}
}

func (s SymbolSet) Remove(sym Symbol) SymbolSet {
	return SymbolSet{m: s.m.Remove(sym)}
}

func (s SymbolSet) Contains(sym Symbol) bool {
	return s.m.Contains(sym)
}

// Union returns a set holding the members of both s and other.
func (s SymbolSet) Union(other SymbolSet) SymbolSet {
	if s.Len() < other.Len() {
		s, other = other, s
	}
	for _, sym := range other.m.Keys() {
		s = s.Add(sym)
	}
	return s
}

func (s SymbolSet) Len() int { return s.m.Len() }

// Sorted returns the members in lexical order.
func (s SymbolSet) Sorted() []Symbol {
	return s.m.Keys()
}
