package ast

import (
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
)

// Constant is a literal value.
type Constant struct {
	Value evaluator.Object
}

func (c *Constant) Accept(v Visitor) { v.VisitConstant(c) }
func (c *Constant) expressionNode()  {}

// NewConstant wraps a value. A nil value stands for nil.
func NewConstant(value evaluator.Object) *Constant {
	if value == nil {
		value = evaluator.NIL
	}
	return &Constant{Value: value}
}

// Reference reads a symbol from the bindings.
type Reference struct {
	Symbol evaluator.Symbol
}

func (r *Reference) Accept(v Visitor) { v.VisitReference(r) }
func (r *Reference) expressionNode()  {}

func NewReference(symbol evaluator.Symbol) *Reference {
	return &Reference{Symbol: symbol}
}

// Application calls Func with Args, left to right.
type Application struct {
	Func Expression
	Args []Expression

	// arity is fixed at construction; Validate rejects trees whose Args
	// were edited afterwards.
	arity int
}

func (a *Application) Accept(v Visitor) { v.VisitApplication(a) }
func (a *Application) expressionNode()  {}

func NewApplication(fn Expression, args ...Expression) *Application {
	return &Application{
		Func:  fn,
		Args:  append([]Expression(nil), args...),
		arity: len(args),
	}
}

// Arity is the number of arguments the call was built with.
func (a *Application) Arity() int { return a.arity }

// Conditional evaluates Then when Cond is truthy and Else otherwise.
type Conditional struct {
	Cond Expression
	Then Expression
	Else Expression

	typ typesystem.Type
}

func (c *Conditional) Accept(v Visitor) { v.VisitConditional(c) }
func (c *Conditional) expressionNode()  {}

func NewConditional(cond, then, els Expression) *Conditional {
	return &Conditional{
		Cond: cond,
		Then: then,
		Else: els,
		typ:  typeOf(then).Union(typeOf(els)),
	}
}

// Binding evaluates Value, binds it to Symbol and evaluates Body under the
// extended bindings.
type Binding struct {
	Symbol evaluator.Symbol
	Value  Expression
	Body   Expression
}

func (b *Binding) Accept(v Visitor) { v.VisitBinding(b) }
func (b *Binding) expressionNode()  {}

func NewBinding(symbol evaluator.Symbol, value, body Expression) *Binding {
	return &Binding{Symbol: symbol, Value: value, Body: body}
}

// Return exits the enclosing function with the value of Value.
type Return struct {
	Value Expression
}

func (r *Return) Accept(v Visitor) { v.VisitReturn(r) }
func (r *Return) expressionNode()  {}

func NewReturn(value Expression) *Return {
	return &Return{Value: value}
}

// Cast checks at runtime that the value of Expr is a member of Target.
type Cast struct {
	Target typesystem.Type
	Expr   Expression
}

func (c *Cast) Accept(v Visitor) { v.VisitCast(c) }
func (c *Cast) expressionNode()  {}

func NewCast(target typesystem.Type, expr Expression) *Cast {
	return &Cast{Target: target, Expr: expr}
}

// Specialised asserts, without a runtime check, that every value of Expr
// is a member of Target. Only the optimiser and Specialise build these,
// and only when the assertion is known to hold.
type Specialised struct {
	Target typesystem.Type
	Expr   Expression
}

func (s *Specialised) Accept(v Visitor) { v.VisitSpecialised(s) }
func (s *Specialised) expressionNode()  {}

func NewSpecialised(target typesystem.Type, expr Expression) *Specialised {
	return &Specialised{Target: target, Expr: expr}
}

// typeOf tolerates the nil children of trees Validate has yet to reject.
func typeOf(e Expression) typesystem.Type {
	if e == nil {
		return typesystem.Anything
	}
	return Type(e)
}
