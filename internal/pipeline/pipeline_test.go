package pipeline_test

import (
	"testing"

	"github.com/goxlang/gox/internal/checker"
	"github.com/goxlang/gox/internal/ircode"
	"github.com/goxlang/gox/internal/lexer"
	"github.com/goxlang/gox/internal/parser"
	"github.com/goxlang/gox/internal/pipeline"
)

func fullPipeline() *pipeline.Pipeline {
	return pipeline.New(
		lexer.NewLexerProcessor(),
		parser.NewParserProcessor(),
		checker.NewCheckerProcessor(),
		ircode.NewCodegenProcessor(),
	)
}

func TestCleanSourceProducesIR(t *testing.T) {
	ctx := pipeline.NewPipelineContext(`
func square(n int) int {
	return n * n;
}
print square(7);
`)
	ctx.FilePath = "square.gox"
	ctx = fullPipeline().Run(ctx)

	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if ctx.IR == nil {
		t.Fatal("no IR produced")
	}

	names := ctx.IR.FunctionNames()
	if len(names) != 2 || names[0] != "main" || names[1] != "square" {
		t.Errorf("got functions %v, want [main square]", names)
	}
}

func TestCheckerErrorsSuppressCodegen(t *testing.T) {
	ctx := pipeline.NewPipelineContext("var x int = 1.5;")
	ctx.FilePath = "bad.gox"
	ctx = fullPipeline().Run(ctx)

	if !ctx.HasErrors() {
		t.Fatal("expected a type error")
	}
	if ctx.IR != nil {
		t.Error("no IR may be generated for a program with errors")
	}
}

func TestDiagnosticsCarryFilePath(t *testing.T) {
	ctx := pipeline.NewPipelineContext("print missing;")
	ctx.FilePath = "prog.gox"
	ctx = fullPipeline().Run(ctx)

	if !ctx.HasErrors() {
		t.Fatal("expected an undeclared-symbol error")
	}
	for _, err := range ctx.Errors {
		if err.File != "prog.gox" {
			t.Errorf("diagnostic missing file path: %s", err.Error())
		}
	}
}

func TestLexerErrorsStillReachTheEnd(t *testing.T) {
	ctx := pipeline.NewPipelineContext("var x int = 1; @")
	ctx = fullPipeline().Run(ctx)

	if !ctx.HasErrors() {
		t.Fatal("expected a lexer error")
	}
	if ctx.IR != nil {
		t.Error("no IR may be generated for a program with errors")
	}
}
