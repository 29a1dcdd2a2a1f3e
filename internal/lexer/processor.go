package lexer

import (
	"github.com/goxlang/gox/internal/pipeline"
)

type LexerProcessor struct{}

func NewLexerProcessor() *LexerProcessor {
	return &LexerProcessor{}
}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)
	ctx.TokenStream = l.Tokenize()

	for _, err := range l.Errors() {
		ctx.AddError(err)
	}

	return ctx
}
