package pipeline

import (
	"github.com/goxlang/gox/internal/ast"
	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/token"
)

// Program is what the code generator contributes to the context. Declared as
// an interface here to keep this package free of an ircode dependency; the
// concrete type is *ircode.Program.
type Program interface {
	FunctionNames() []string
}

// PipelineContext carries one translation unit through the stages.
type PipelineContext struct {
	Source   string
	FilePath string

	TokenStream []token.Token
	AstRoot     *ast.Program
	IR          Program

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{Source: source}
}

// AddError appends a diagnostic, stamping the context's file path onto it.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
