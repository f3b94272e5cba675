package ast

import (
	"fmt"

	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
)

// Expression is a node of the expression tree: the unit of optimisation,
// specialisation, substitution and evaluation.
//
// The set of variants is closed (Constant, Reference, Application,
// Conditional, Binding, Return, Cast, Specialised). Every operation below
// dispatches with a type switch over exactly these variants. Trees are never
// mutated after construction; rewrites always build new nodes and return the
// original node when nothing changed.
type Expression interface {
	Accept(v Visitor)
	expressionNode()
}

// Visitor walks the variants of Expression. Operations that rewrite trees
// use type switches; the visitor serves printers and other read-only walks.
type Visitor interface {
	VisitConstant(n *Constant)
	VisitReference(n *Reference)
	VisitApplication(n *Application)
	VisitConditional(n *Conditional)
	VisitBinding(n *Binding)
	VisitReturn(n *Return)
	VisitCast(n *Cast)
	VisitSpecialised(n *Specialised)
}

func unhandled(e Expression) string {
	return fmt.Sprintf("ast: unhandled expression %T", e)
}

// Type returns the statically known type of e. Every value e can produce
// is a member of it.
func Type(e Expression) typesystem.Type {
	switch n := e.(type) {
	case *Constant:
		return n.Value.RuntimeType()
	case *Reference:
		return typesystem.Anything
	case *Application:
		// Declared result types are only trusted by optimiseCast.
		return typesystem.Anything
	case *Conditional:
		if n.typ == nil {
			return typeOf(n.Then).Union(typeOf(n.Else))
		}
		return n.typ
	case *Binding:
		return Type(n.Body)
	case *Return:
		return typesystem.Nothing
	case *Cast:
		return n.Target
	case *Specialised:
		return n.Target
	}
	panic(unhandled(e))
}

// IsConstant reports whether e can be read with Eval, without an Environment.
//
// Return is constant by convention even though Eval always fails on it:
// anything folding constants must go through constantValue, which excludes it.
func IsConstant(e Expression) bool {
	switch n := e.(type) {
	case *Constant, *Return:
		return true
	case *Reference, *Application, *Conditional, *Binding:
		return false
	case *Cast:
		return IsConstant(n.Expr)
	case *Specialised:
		return IsConstant(n.Expr)
	}
	panic(unhandled(e))
}

// IsPure reports that evaluating e has no observable effect and yields the
// same value for the same bindings.
func IsPure(e Expression) bool {
	switch n := e.(type) {
	case *Constant, *Reference:
		return true
	case *Application:
		return isPureApplication(n)
	case *Conditional:
		return IsPure(n.Cond) && IsPure(n.Then) && IsPure(n.Else)
	case *Binding:
		return IsPure(n.Value) && IsPure(n.Body)
	case *Return:
		// A return transfers control out of the function.
		return false
	case *Cast:
		// A cast that may fail at runtime is an observable fault.
		return IsPure(n.Expr) && typesystem.Contains(n.Target, Type(n.Expr))
	case *Specialised:
		return IsPure(n.Expr)
	}
	panic(unhandled(e))
}

// Eval reads the value of a constant expression. It fails for every
// expression that IsConstant rejects, and for Return.
func Eval(e Expression, env evaluator.Environment) (evaluator.Object, error) {
	switch n := e.(type) {
	case *Constant:
		return n.Value, nil
	case *Return:
		return nil, evaluator.NewError(evaluator.ErrReturnNotEvaluable, "")
	case *Cast:
		return evalCast(n, env)
	case *Specialised:
		return Eval(n.Expr, env)
	case *Reference, *Application, *Conditional, *Binding:
		return nil, evaluator.NewError(evaluator.ErrNotConstant, "%T", e)
	}
	panic(unhandled(e))
}

// Compute evaluates e under bindings, returning the Environment holding the
// produced value. An exiting Environment is returned unchanged: once a
// return fires nothing else is evaluated.
func Compute(e Expression, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Environment, error) {
	if env.IsExiting() {
		return env, nil
	}
	switch n := e.(type) {
	case *Constant:
		return env.WithResult(n.Value), nil
	case *Reference:
		return computeReference(n, env, bindings)
	case *Application:
		return computeApplication(n, env, bindings)
	case *Conditional:
		return computeConditional(n, env, bindings)
	case *Binding:
		return computeBinding(n, env, bindings)
	case *Return:
		return computeReturn(n, env, bindings)
	case *Cast:
		return computeCast(n, env, bindings)
	case *Specialised:
		return Compute(n.Expr, env, bindings)
	}
	panic(unhandled(e))
}

// Execute runs a function body: it computes e and unwraps a fired return.
func Execute(e Expression, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Object, error) {
	out, err := Compute(e, env, bindings)
	if err != nil {
		return nil, err
	}
	return evaluator.Unwrap(out), nil
}

// Optimise returns an equivalent, possibly simpler expression. It returns e
// itself when no rule applies, so callers can iterate to a fixed point by
// pointer comparison.
func Optimise(e Expression) Expression {
	switch n := e.(type) {
	case *Constant, *Reference:
		return e
	case *Application:
		return optimiseApplication(n)
	case *Conditional:
		return optimiseConditional(n)
	case *Binding:
		return optimiseBinding(n)
	case *Return:
		return optimiseReturn(n)
	case *Cast:
		return optimiseCast(n)
	case *Specialised:
		return optimiseSpecialised(n)
	}
	panic(unhandled(e))
}

// OptimiseFixpoint applies Optimise until the tree stops changing or
// maxPasses passes have run. It returns the tree and the passes used.
func OptimiseFixpoint(e Expression, maxPasses int) (Expression, int) {
	if maxPasses < 1 {
		maxPasses = 1
	}
	passes := 0
	for passes < maxPasses {
		next := Optimise(e)
		passes++
		if next == e {
			break
		}
		e = next
	}
	return e, passes
}

// Specialise rewrites e so that its static type is contained in t. The
// boolean is false when no such rewrite exists; that is an outcome, not an
// error, and the caller keeps using e.
func Specialise(e Expression, t typesystem.Type) (Expression, bool) {
	switch n := e.(type) {
	case *Constant:
		if typesystem.Contains(t, Type(n)) {
			return n, true
		}
		return nil, false
	case *Reference:
		return castTo(n, t), true
	case *Application:
		// Return types are not inferred, so the call is checked at runtime.
		return castTo(n, t), true
	case *Conditional:
		return specialiseConditional(n, t)
	case *Binding:
		return specialiseBinding(n, t)
	case *Return:
		return n, true
	case *Cast:
		return specialiseCast(n, t)
	case *Specialised:
		if typesystem.Contains(t, n.Target) {
			return n, true
		}
		return Specialise(n.Expr, t)
	}
	panic(unhandled(e))
}

// Substitute replaces free references to the symbols bound in s. The boolean
// is false when the replacement would be captured by a local binding.
func Substitute(e Expression, s Substitution) (Expression, bool) {
	if s.Len() == 0 {
		return e, true
	}
	switch n := e.(type) {
	case *Constant:
		return n, true
	case *Reference:
		if replacement, ok := s.Lookup(n.Symbol); ok {
			return replacement, true
		}
		return n, true
	case *Application:
		return substituteApplication(n, s)
	case *Conditional:
		return substituteConditional(n, s)
	case *Binding:
		return substituteBinding(n, s)
	case *Return:
		value, ok := Substitute(n.Value, s)
		if !ok {
			return nil, false
		}
		if value == n.Value {
			return n, true
		}
		return NewReturn(value), true
	case *Cast:
		inner, ok := Substitute(n.Expr, s)
		if !ok {
			return nil, false
		}
		if inner == n.Expr {
			return n, true
		}
		return NewCast(n.Target, inner), true
	case *Specialised:
		inner, ok := Substitute(n.Expr, s)
		if !ok {
			return nil, false
		}
		if inner == n.Expr {
			return n, true
		}
		return NewSpecialised(n.Target, inner), true
	}
	panic(unhandled(e))
}

// AccumulateFreeSymbols adds the symbols e reads from its enclosing scope to s.
func AccumulateFreeSymbols(e Expression, s evaluator.SymbolSet) evaluator.SymbolSet {
	switch n := e.(type) {
	case *Constant:
		return s
	case *Reference:
		return s.Add(n.Symbol)
	case *Application:
		s = AccumulateFreeSymbols(n.Func, s)
		for _, arg := range n.Args {
			s = AccumulateFreeSymbols(arg, s)
		}
		return s
	case *Conditional:
		s = AccumulateFreeSymbols(n.Cond, s)
		s = AccumulateFreeSymbols(n.Then, s)
		return AccumulateFreeSymbols(n.Else, s)
	case *Binding:
		return s.Union(bindingFreeSymbols(n))
	case *Return:
		return AccumulateFreeSymbols(n.Value, s)
	case *Cast:
		return AccumulateFreeSymbols(n.Expr, s)
	case *Specialised:
		return AccumulateFreeSymbols(n.Expr, s)
	}
	panic(unhandled(e))
}

// FreeSymbols returns the symbols e reads from its enclosing scope.
func FreeSymbols(e Expression) evaluator.SymbolSet {
	return AccumulateFreeSymbols(e, evaluator.EmptySymbolSet())
}

// occursFree reports whether sym is read from the enclosing scope anywhere
// in e, binding values included.
func occursFree(e Expression, sym evaluator.Symbol) bool {
	switch n := e.(type) {
	case *Constant:
		return false
	case *Reference:
		return n.Symbol == sym
	case *Application:
		if occursFree(n.Func, sym) {
			return true
		}
		for _, arg := range n.Args {
			if occursFree(arg, sym) {
				return true
			}
		}
		return false
	case *Conditional:
		return occursFree(n.Cond, sym) || occursFree(n.Then, sym) || occursFree(n.Else, sym)
	case *Binding:
		return occursFree(n.Value, sym) || (n.Symbol != sym && occursFree(n.Body, sym))
	case *Return:
		return occursFree(n.Value, sym)
	case *Cast:
		return occursFree(n.Expr, sym)
	case *Specialised:
		return occursFree(n.Expr, sym)
	}
	panic(unhandled(e))
}

// Validate checks the structure of the whole tree. A failure means the tree
// was built incorrectly; it is not something evaluation can recover from.
func Validate(e Expression) error {
	switch n := e.(type) {
	case nil:
		return evaluator.NewError(evaluator.ErrMalformed, "nil expression")
	case *Constant:
		if n.Value == nil {
			return evaluator.NewError(evaluator.ErrMalformed, "constant without a value")
		}
		return nil
	case *Reference:
		if n.Symbol == "" {
			return evaluator.NewError(evaluator.ErrMalformed, "reference without a symbol")
		}
		return nil
	case *Application:
		return validateApplication(n)
	case *Conditional:
		return validateAll(n.Cond, n.Then, n.Else)
	case *Binding:
		if n.Symbol == "" {
			return evaluator.NewError(evaluator.ErrMalformed, "binding without a symbol")
		}
		return validateAll(n.Value, n.Body)
	case *Return:
		return Validate(n.Value)
	case *Cast:
		if n.Target == nil {
			return evaluator.NewError(evaluator.ErrMalformed, "cast without a target type")
		}
		return Validate(n.Expr)
	case *Specialised:
		if n.Target == nil {
			return evaluator.NewError(evaluator.ErrMalformed, "specialisation without a target type")
		}
		return Validate(n.Expr)
	}
	panic(unhandled(e))
}

func validateAll(exprs ...Expression) error {
	for _, e := range exprs {
		if err := Validate(e); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether two trees have the same structure.
func Equal(a, b Expression) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *Constant:
		y, ok := b.(*Constant)
		return ok && evaluator.ObjectsEqual(x.Value, y.Value)
	case *Reference:
		y, ok := b.(*Reference)
		return ok && x.Symbol == y.Symbol
	case *Application:
		y, ok := b.(*Application)
		if !ok || len(x.Args) != len(y.Args) || !Equal(x.Func, y.Func) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Conditional:
		y, ok := b.(*Conditional)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *Binding:
		y, ok := b.(*Binding)
		return ok && x.Symbol == y.Symbol && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	case *Return:
		y, ok := b.(*Return)
		return ok && Equal(x.Value, y.Value)
	case *Cast:
		y, ok := b.(*Cast)
		return ok && typesystem.Equal(x.Target, y.Target) && Equal(x.Expr, y.Expr)
	case *Specialised:
		y, ok := b.(*Specialised)
		return ok && typesystem.Equal(x.Target, y.Target) && Equal(x.Expr, y.Expr)
	}
	return false
}
