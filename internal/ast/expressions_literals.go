package ast

import (
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
)

// constantValue reads the value of e for folding. Return counts as constant
// but carries no value outside a function body, so it never folds.
func constantValue(e Expression) (evaluator.Object, bool) {
	if !IsConstant(e) || exits(e) {
		return nil, false
	}
	value, err := Eval(e, evaluator.NewEnvironment())
	if err != nil {
		return nil, false
	}
	return value, true
}

// exits reports that e is a return, possibly under type wrappers.
func exits(e Expression) bool {
	switch n := e.(type) {
	case *Return:
		return true
	case *Cast:
		return exits(n.Expr)
	case *Specialised:
		return exits(n.Expr)
	}
	return false
}

// cannotFail reports that computing e always yields a value. Lookups, host
// calls and runtime cast checks may all fault, so none of them qualify.
func cannotFail(e Expression) bool {
	switch n := e.(type) {
	case *Constant:
		return true
	case *Cast:
		return cannotFail(n.Expr) && typesystem.Contains(n.Target, Type(n.Expr))
	case *Specialised:
		return cannotFail(n.Expr)
	case *Conditional:
		return cannotFail(n.Cond) && cannotFail(n.Then) && cannotFail(n.Else)
	case *Binding:
		return cannotFail(n.Value) && cannotFail(n.Body)
	}
	return false
}

// callsHost reports that computing e may invoke a host function.
func callsHost(e Expression) bool {
	switch n := e.(type) {
	case *Constant, *Reference:
		return false
	case *Application:
		return true
	case *Conditional:
		return callsHost(n.Cond) || callsHost(n.Then) || callsHost(n.Else)
	case *Binding:
		return callsHost(n.Value) || callsHost(n.Body)
	case *Return:
		return callsHost(n.Value)
	case *Cast:
		return callsHost(n.Expr)
	case *Specialised:
		return callsHost(n.Expr)
	}
	panic(unhandled(e))
}

func isConstantNode(e Expression) bool {
	_, ok := e.(*Constant)
	return ok
}

func computeReference(r *Reference, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Environment, error) {
	value, ok := bindings.Lookup(r.Symbol)
	if !ok {
		return env, evaluator.NewError(evaluator.ErrUnbound, "%s", r.Symbol)
	}
	return env.WithResult(value), nil
}
