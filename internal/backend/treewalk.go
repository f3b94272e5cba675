package backend

import (
	"fmt"

	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/pipeline"
)

// TreeWalkBackend computes the tree against the context's bindings.
type TreeWalkBackend struct{}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run computes the tree as a function body: a fired return yields the
// returned value.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, error) {
	if ctx.Expr == nil {
		return nil, fmt.Errorf("no expression to execute")
	}
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}

	env, err := ast.Compute(ctx.Expr, ctx.Env, ctx.Bindings)
	if err != nil {
		return nil, err
	}
	ctx.Env = env
	return evaluator.Unwrap(env), nil
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
