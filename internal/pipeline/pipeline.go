package pipeline

// Processor is a single compilation stage. Stages read and extend the
// context; they never abort the pipeline themselves.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is an ordered chain of compilation stages.
type Pipeline struct {
	stages []Processor
}

func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run feeds the context through every stage in order. No stage is ever
// skipped here: diagnostics from later stages accumulate alongside
// earlier ones, and a stage that needs a clean input guards for it
// itself.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}
