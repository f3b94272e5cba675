package pipeline

// Processor is one stage of a Pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Every stage runs, so later stages see the
// errors of earlier ones and decide for themselves whether to skip; a
// cancelled Context stops the run between stages.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Context != nil {
			if err := ctx.Context.Err(); err != nil {
				ctx.Errors = append(ctx.Errors, err)
				return ctx
			}
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
