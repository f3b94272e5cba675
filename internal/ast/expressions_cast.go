package ast

import (
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
)

func checkCast(c *Cast, value evaluator.Object) error {
	if !typesystem.Contains(c.Target, value.RuntimeType()) {
		return evaluator.NewError(evaluator.ErrCastFailed, "%s is not %s", value.Inspect(), c.Target)
	}
	return nil
}

func evalCast(c *Cast, env evaluator.Environment) (evaluator.Object, error) {
	value, err := Eval(c.Expr, env)
	if err != nil {
		return nil, err
	}
	if err := checkCast(c, value); err != nil {
		return nil, err
	}
	return value, nil
}

func computeCast(c *Cast, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Environment, error) {
	env, err := Compute(c.Expr, env, bindings)
	if err != nil || env.IsExiting() {
		return env, err
	}
	if err := checkCast(c, env.Result()); err != nil {
		return env, err
	}
	return env, nil
}

// castTo wraps e in a runtime check unless its type already fits t.
func castTo(e Expression, t typesystem.Type) Expression {
	if typesystem.Contains(t, Type(e)) {
		return e
	}
	return NewCast(t, e)
}

func optimiseCast(c *Cast) Expression {
	inner := Optimise(c.Expr)
	if typesystem.Contains(c.Target, Type(inner)) {
		return inner
	}
	// A call whose callee declares a result type inside the target cannot
	// fail the check.
	if app, ok := inner.(*Application); ok {
		if fn, ok := app.Func.(*Constant); ok {
			if result, ok := evaluator.ResultType(fn.Value); ok && typesystem.Contains(c.Target, result) {
				return NewSpecialised(result, app)
			}
		}
	}
	if inner == c.Expr {
		return c
	}
	return NewCast(c.Target, inner)
}

func specialiseCast(c *Cast, t typesystem.Type) (Expression, bool) {
	if typesystem.Contains(t, c.Target) {
		return c, true
	}
	inner, ok := Specialise(c.Expr, t)
	if !ok {
		return nil, false
	}
	if typesystem.Contains(c.Target, t) {
		return inner, true
	}
	// Only part of t passes the original check, so keep it.
	return NewSpecialised(t, NewCast(c.Target, inner)), true
}

func optimiseSpecialised(s *Specialised) Expression {
	inner := Optimise(s.Expr)
	if typesystem.Contains(s.Target, Type(inner)) {
		return inner
	}
	if inner == s.Expr {
		return s
	}
	return NewSpecialised(s.Target, inner)
}
