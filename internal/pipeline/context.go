package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/google/uuid"
)

// PipelineContext carries one expression tree through the stages.
type PipelineContext struct {
	Context context.Context

	// RunID tags every log line of one run.
	RunID string

	Expr     ast.Expression
	Bindings evaluator.Bindings
	Env      evaluator.Environment

	// Target is the type SpecialiseProcessor narrows Expr to; nil skips it.
	Target typesystem.Type

	// Passes is the number of optimiser passes that ran.
	Passes int
	// Specialised reports that Expr was successfully narrowed to Target.
	Specialised bool

	Result evaluator.Object
	Errors []error

	Logger *slog.Logger
}

// NewPipelineContext prepares a run of expr under bindings.
func NewPipelineContext(expr ast.Expression, bindings evaluator.Bindings) *PipelineContext {
	return &PipelineContext{
		Context:  context.Background(),
		RunID:    uuid.New().String(),
		Expr:     expr,
		Bindings: bindings,
		Env:      evaluator.NewEnvironment(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Err joins the errors collected so far, nil if there were none.
func (ctx *PipelineContext) Err() error {
	return errors.Join(ctx.Errors...)
}

// Log returns the context logger scoped to the run and a stage.
func (ctx *PipelineContext) Log(stage string) *slog.Logger {
	return ctx.Logger.With("run", ctx.RunID, "stage", stage)
}
