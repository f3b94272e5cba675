package ast

import (
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/samber/lo"
)

func isPureApplication(a *Application) bool {
	fn, ok := a.Func.(*Constant)
	if !ok || !evaluator.IsPureFn(fn.Value) {
		return false
	}
	return lo.EveryBy(a.Args, IsPure)
}

func computeApplication(a *Application, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Environment, error) {
	env, err := Compute(a.Func, env, bindings)
	if err != nil || env.IsExiting() {
		return env, err
	}
	callee := env.Result()
	fn, ok := callee.(evaluator.Callable)
	if !ok {
		return env, evaluator.NewError(evaluator.ErrNotCallable, "%s", callee.Inspect())
	}

	args := make([]evaluator.Object, 0, len(a.Args))
	for _, arg := range a.Args {
		env, err = Compute(arg, env, bindings)
		if err != nil || env.IsExiting() {
			return env, err
		}
		args = append(args, env.Result())
	}

	result, err := fn.Apply(args)
	if err != nil {
		return env, evaluator.WrapHostError(callee.Inspect(), err)
	}
	return env.WithResult(result), nil
}

func optimiseApplication(a *Application) Expression {
	fn := Optimise(a.Func)
	args := lo.Map(a.Args, func(arg Expression, _ int) Expression {
		return Optimise(arg)
	})
	if folded, ok := foldApplication(fn, args); ok {
		return folded
	}
	if fn == a.Func && sameExpressions(args, a.Args) {
		return a
	}
	return NewApplication(fn, args...)
}

// foldApplication evaluates a call of a pure function on constants. A call
// that fails is left in the tree so the failure surfaces at runtime, if the
// call is reached at all.
func foldApplication(fn Expression, args []Expression) (Expression, bool) {
	c, ok := fn.(*Constant)
	if !ok || !evaluator.IsPureFn(c.Value) || !lo.EveryBy(args, isConstantNode) {
		return nil, false
	}
	values := lo.Map(args, func(arg Expression, _ int) evaluator.Object {
		return arg.(*Constant).Value
	})
	result, err := c.Value.(evaluator.Callable).Apply(values)
	if err != nil {
		return nil, false
	}
	return NewConstant(result), true
}

func substituteApplication(a *Application, s Substitution) (Expression, bool) {
	fn, ok := Substitute(a.Func, s)
	if !ok {
		return nil, false
	}
	args := make([]Expression, len(a.Args))
	for i, arg := range a.Args {
		if args[i], ok = Substitute(arg, s); !ok {
			return nil, false
		}
	}
	if fn == a.Func && sameExpressions(args, a.Args) {
		return a, true
	}
	return NewApplication(fn, args...), true
}

func validateApplication(a *Application) error {
	if len(a.Args) != a.arity {
		return evaluator.NewError(evaluator.ErrArity, "application built with %d arguments has %d", a.arity, len(a.Args))
	}
	if err := Validate(a.Func); err != nil {
		return err
	}
	return validateAll(a.Args...)
}

func sameExpressions(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
