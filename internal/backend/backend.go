// Package backend provides an interface for different execution backends.
// This allows switching between full tree-walk evaluation and the
// constant-only path.
package backend

import (
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run evaluates the tree held by the pipeline context and returns its value
	Run(ctx *pipeline.PipelineContext) (evaluator.Object, error)

	// Name returns the backend name for display
	Name() string
}
