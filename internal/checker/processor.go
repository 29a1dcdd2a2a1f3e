package checker

import (
	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/pipeline"
	"github.com/goxlang/gox/internal/token"
)

// CheckerProcessor runs the semantic pass inside the pipeline. It is a
// no-op when earlier stages already failed, since a partial AST would only
// produce noise on top of the real errors.
type CheckerProcessor struct{}

func NewCheckerProcessor() *CheckerProcessor {
	return &CheckerProcessor{}
}

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}
	if ctx.AstRoot == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "no syntax tree to check"))
		return ctx
	}

	c := New()
	for _, err := range c.Check(ctx.AstRoot) {
		ctx.AddError(err)
	}
	return ctx
}
