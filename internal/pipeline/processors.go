package pipeline

import (
	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/prettyprinter"
)

// ValidateProcessor rejects malformed trees before anything else sees them.
type ValidateProcessor struct{}

func (vp *ValidateProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if err := ast.Validate(ctx.Expr); err != nil {
		ctx.Log("validate").Debug("invalid tree", "error", err)
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// OptimiseProcessor rewrites the tree to a fixed point, giving up after
// MaxPasses passes.
type OptimiseProcessor struct {
	MaxPasses int
}

func (op *OptimiseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Expr == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	log := ctx.Log("optimise")
	expr, passes := ast.OptimiseFixpoint(ctx.Expr, op.MaxPasses)
	ctx.Passes += passes
	if expr != ctx.Expr {
		log.Debug("optimised", "passes", passes, "tree", prettyprinter.Print(expr))
	} else {
		log.Debug("already optimal", "tree", prettyprinter.Print(expr))
	}
	ctx.Expr = expr
	return ctx
}

// SpecialiseProcessor narrows the tree to ctx.Target. A tree that cannot
// be narrowed is kept as it is: that is an outcome, not an error.
type SpecialiseProcessor struct{}

func (sp *SpecialiseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Expr == nil || ctx.Target == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	log := ctx.Log("specialise")
	expr, ok := ast.Specialise(ctx.Expr, ctx.Target)
	if !ok {
		log.Debug("cannot specialise", "target", ctx.Target.String())
		return ctx
	}
	ctx.Expr = expr
	ctx.Specialised = true
	log.Debug("specialised", "target", ctx.Target.String(), "tree", prettyprinter.Print(expr))
	return ctx
}
