package backend

import (
	"fmt"

	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/pipeline"
)

// ConstantBackend reads trees through the constant-only path. It never
// consults bindings, so it only accepts trees the optimiser reduced to a
// constant; anything else fails with ErrNotConstant.
type ConstantBackend struct{}

func NewConstant() *ConstantBackend {
	return &ConstantBackend{}
}

func (b *ConstantBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, error) {
	if ctx.Expr == nil {
		return nil, fmt.Errorf("no expression to execute")
	}
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}
	return ast.Eval(ctx.Expr, ctx.Env)
}

func (b *ConstantBackend) Name() string {
	return "constant"
}
