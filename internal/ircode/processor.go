package ircode

import (
	"github.com/goxlang/gox/internal/pipeline"
)

// CodegenProcessor lowers the checked AST into IR inside the pipeline.
// It refuses to run when any earlier stage reported errors.
type CodegenProcessor struct{}

func NewCodegenProcessor() *CodegenProcessor {
	return &CodegenProcessor{}
}

func (cp *CodegenProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() || ctx.AstRoot == nil {
		return ctx
	}
	ctx.IR = NewGenerator().Generate(ctx.AstRoot)
	return ctx
}
