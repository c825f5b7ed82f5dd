package pipeline

// Pipeline is the model analyzer's stage sequence: dimension resolution,
// variable reading, reference resolution, equation reading, spec
// checking, and listing, run in the data-flow order spec.md §2
// describes.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run drives initialCtx through every stage in order. The loop itself
// never inspects ctx.Fatal: each stage is wrapped in skipIfFatal, so a
// stage that follows a fatal diagnostic (spec.md §7) becomes a no-op
// rather than aborting the loop early.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
