package parser

import (
	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/pipeline"
	"github.com/goxlang/gox/internal/token"
)

// ParserProcessor turns the token stream into an AST inside the pipeline.
type ParserProcessor struct{}

func NewParserProcessor() *ParserProcessor {
	return &ParserProcessor{}
}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "no token stream to parse"))
		return ctx
	}

	p := New(ctx.TokenStream)
	program := p.ParseProgram()
	program.File = ctx.FilePath
	ctx.AstRoot = program

	for _, err := range p.Errors() {
		ctx.AddError(err)
	}
	return ctx
}
