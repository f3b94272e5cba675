package ast

import (
	"github.com/arrdem/kiss/internal/evaluator"
)

// Substitution maps symbols to the expressions that replace them. Like
// Bindings it is persistent: Assoc and Without leave the receiver intact.
type Substitution struct {
	m *evaluator.PersistentMap[Expression]
}

func EmptySubstitution() Substitution {
	return Substitution{m: evaluator.EmptyMap[Expression]()}
}

// NewSubstitution builds a substitution replacing a single symbol.
func NewSubstitution(sym evaluator.Symbol, replacement Expression) Substitution {
	return EmptySubstitution().Assoc(sym, replacement)
}

func (s Substitution) Assoc(sym evaluator.Symbol, replacement Expression) Substitution {
	return Substitution{m: s.m.Put(sym, replacement)}
}

func (s Substitution) Without(sym evaluator.Symbol) Substitution {
	return Substitution{m: s.m.Remove(sym)}
}

func (s Substitution) Lookup(sym evaluator.Symbol) (Expression, bool) {
	return s.m.Get(sym)
}

func (s Substitution) Len() int { return s.m.Len() }

// Items returns the replacements ordered by symbol.
func (s Substitution) Items() []evaluator.Item[Expression] {
	return s.m.Items()
}
