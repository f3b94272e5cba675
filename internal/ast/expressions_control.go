package ast

import (
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
)

func computeConditional(c *Conditional, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Environment, error) {
	env, err := Compute(c.Cond, env, bindings)
	if err != nil || env.IsExiting() {
		return env, err
	}
	if evaluator.IsTruthy(env.Result()) {
		return Compute(c.Then, env, bindings)
	}
	return Compute(c.Else, env, bindings)
}

// optimiseConditional settles the condition before looking at the branches,
// so a branch that can never run is dropped without being optimised.
func optimiseConditional(c *Conditional) Expression {
	cond := Optimise(c.Cond)
	if value, ok := constantValue(cond); ok {
		if evaluator.IsTruthy(value) {
			return Optimise(c.Then)
		}
		return Optimise(c.Else)
	}
	// A host call may fault even when pure, and dropping the condition would
	// drop the fault with it.
	if IsPure(cond) && !callsHost(cond) {
		t := Type(cond)
		if t.CannotBeFalsey() {
			return Optimise(c.Then)
		}
		if t.CannotBeTruthy() {
			return Optimise(c.Else)
		}
	}

	then := Optimise(c.Then)
	els := Optimise(c.Else)
	if cond == c.Cond && then == c.Then && els == c.Else {
		return c
	}
	return NewConditional(cond, then, els)
}

func specialiseConditional(c *Conditional, t typesystem.Type) (Expression, bool) {
	then, ok := Specialise(c.Then, t)
	if !ok {
		return nil, false
	}
	els, ok := Specialise(c.Else, t)
	if !ok {
		return nil, false
	}
	if then == c.Then && els == c.Else {
		return c, true
	}
	return NewConditional(c.Cond, then, els), true
}

func substituteConditional(c *Conditional, s Substitution) (Expression, bool) {
	cond, ok := Substitute(c.Cond, s)
	if !ok {
		return nil, false
	}
	then, ok := Substitute(c.Then, s)
	if !ok {
		return nil, false
	}
	els, ok := Substitute(c.Else, s)
	if !ok {
		return nil, false
	}
	if cond == c.Cond && then == c.Then && els == c.Else {
		return c, true
	}
	return NewConditional(cond, then, els), true
}

func computeReturn(r *Return, env evaluator.Environment, bindings evaluator.Bindings) (evaluator.Environment, error) {
	env, err := Compute(r.Value, env, bindings)
	if err != nil || env.IsExiting() {
		return env, err
	}
	return env.Exit(env.Result()), nil
}

func optimiseReturn(r *Return) Expression {
	value := Optimise(r.Value)
	if value == r.Value {
		return r
	}
	return NewReturn(value)
}
