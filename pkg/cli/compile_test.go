package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompileSourceProducesProgram(t *testing.T) {
	program, errs := compileSource("print 42;", "t.gox")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if program == nil || len(program.Functions) == 0 {
		t.Fatal("no program produced")
	}
}

func TestCompileSourceCollectsErrors(t *testing.T) {
	_, errs := compileSource("var a int = 1.5;\nprint b;", "t.gox")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	for _, err := range errs {
		if !strings.HasPrefix(err.Error(), "t.gox:") {
			t.Errorf("diagnostic missing file prefix: %s", err.Error())
		}
	}
}

func TestReportDiagnosticsPlainOutput(t *testing.T) {
	_, errs := compileSource("print b;", "t.gox")

	var buf bytes.Buffer
	reportDiagnostics(&buf, errs)

	out := buf.String()
	if !strings.Contains(out, "error: t.gox:1:7: C002:") {
		t.Errorf("unexpected format:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output must not contain ANSI escapes")
	}
	if !strings.Contains(out, "1 error(s) found") {
		t.Errorf("missing summary line:\n%s", out)
	}
}

func TestIsSourceFile(t *testing.T) {
	if !isSourceFile("prog.gox") {
		t.Error("prog.gox should be recognized")
	}
	if isSourceFile("prog.goxb") || isSourceFile("prog.txt") {
		t.Error("non-source extensions should be rejected")
	}
}
