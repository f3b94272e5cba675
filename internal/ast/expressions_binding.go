package ast

import (
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
)

func computeBinding(b *Binding, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Environment, error) {
	env, err := Compute(b.Value, env, bindings)
	if err != nil || env.IsExiting() {
		return env, err
	}
	return Compute(b.Body, env, bindings.Assoc(b.Symbol, env.Result()))
}

// optimiseBinding propagates constants and plain references into the body,
// then drops bindings nothing reads. The value is always computed, so a
// binding is only dropped when its value cannot fail.
func optimiseBinding(b *Binding) Expression {
	value := Optimise(b.Value)
	body := Optimise(b.Body)

	switch value.(type) {
	case *Constant:
		if inlined, ok := Substitute(body, NewSubstitution(b.Symbol, value)); ok {
			return Optimise(inlined)
		}
	case *Reference:
		// An unread reference would vanish along with its lookup.
		if occursFree(body, b.Symbol) {
			if inlined, ok := Substitute(body, NewSubstitution(b.Symbol, value)); ok {
				return Optimise(inlined)
			}
		}
	}
	if cannotFail(value) && !occursFree(body, b.Symbol) {
		return body
	}

	if value == b.Value && body == b.Body {
		return b
	}
	return NewBinding(b.Symbol, value, body)
}

func specialiseBinding(b *Binding, t typesystem.Type) (Expression, bool) {
	body, ok := Specialise(b.Body, t)
	if !ok {
		return nil, false
	}
	if body == b.Body {
		return b, true
	}
	return NewBinding(b.Symbol, b.Value, body), true
}

func substituteBinding(b *Binding, s Substitution) (Expression, bool) {
	value, ok := Substitute(b.Value, s)
	if !ok {
		return nil, false
	}
	inner := s.Without(b.Symbol)
	if captures(inner, b.Symbol, b.Body) {
		return nil, false
	}
	body, ok := Substitute(b.Body, inner)
	if !ok {
		return nil, false
	}
	if value == b.Value && body == b.Body {
		return b, true
	}
	return NewBinding(b.Symbol, value, body), true
}

// captures reports whether a replacement that lands in body reads sym, which
// body rebinds.
func captures(s Substitution, sym evaluator.Symbol, body Expression) bool {
	for _, item := range s.Items() {
		if occursFree(body, item.Key) && occursFree(item.Value, sym) {
			return true
		}
	}
	return false
}

// bindingFreeSymbols is the free set of the body less the bound symbol. The
// value's own free symbols are not included.
func bindingFreeSymbols(b *Binding) evaluator.SymbolSet {
	return AccumulateFreeSymbols(b.Body, evaluator.EmptySymbolSet()).Remove(b.Symbol)
}
