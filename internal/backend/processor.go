package backend

import (
	"github.com/arrdem/kiss/internal/pipeline"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.Expr == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	log := ctx.Log("execute").With("backend", p.Backend.Name())
	result, err := p.Backend.Run(ctx)
	if err != nil {
		log.Debug("evaluation failed", "error", err)
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Result = result
	log.Debug("evaluated", "result", result.Inspect(), "returned", ctx.Env.IsExiting())
	return ctx
}
