package parser

import (
	"strings"
	"testing"

	"github.com/goxlang/gox/internal/ast"
	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/lexer"
	"github.com/goxlang/gox/internal/types"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	toks := l.Tokenize()
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("lexer errors: %v", errs)
	}

	p := New(toks)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("parser errors:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return program
}

func expectParserError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	l := lexer.New(input)
	p := New(l.Tokenize())
	p.ParseProgram()
	for _, err := range p.Errors() {
		if err.Code == code {
			return
		}
	}
	t.Fatalf("expected error %s, got %v\ninput: %s", code, p.Errors(), input)
}

func TestVarDeclaration(t *testing.T) {
	program := parseProgram(t, "var x int = 1;")
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}

	decl, ok := program.Statements[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.VarDeclaration", program.Statements[0])
	}
	if decl.Name != "x" || decl.Type != types.Int {
		t.Errorf("got %s %s", decl.Name, decl.Type)
	}
	lit, ok := decl.Value.(*ast.Literal)
	if !ok || lit.Value.(int64) != 1 {
		t.Errorf("initializer: got %#v", decl.Value)
	}
}

func TestDeclarationTypeInference(t *testing.T) {
	tests := []struct {
		input string
		want  types.Type
	}{
		{"var x = 1;", types.Int},
		{"var x = 2.5;", types.Float},
		{"var x = true;", types.Bool},
		{"var x = 'a';", types.Char},
	}
	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		decl := program.Statements[0].(*ast.VarDeclaration)
		if decl.Type != tt.want {
			t.Errorf("%s: inferred %s, want %s", tt.input, decl.Type, tt.want)
		}
	}
}

func TestDeclarationWithoutTypeOrLiteralFails(t *testing.T) {
	expectParserError(t, "var x;", diagnostics.ErrP001)
	expectParserError(t, "var y = x;", diagnostics.ErrP001)
}

func TestConstRequiresInitializer(t *testing.T) {
	expectParserError(t, "const c int;", diagnostics.ErrP001)

	program := parseProgram(t, "const c int = 3;")
	decl := program.Statements[0].(*ast.ConstDeclaration)
	if decl.Name != "c" || decl.Value == nil {
		t.Errorf("got %+v", decl)
	}
}

func TestFunctionDefinition(t *testing.T) {
	program := parseProgram(t, "func add(x int, y int) int { return x + y; }")
	fn := program.Statements[0].(*ast.FunctionDefinition)

	if fn.Name != "add" || fn.ReturnType != types.Int {
		t.Errorf("got %s %s", fn.Name, fn.ReturnType)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(fn.Parameters))
	}
	if fn.Parameters[0].Name != "x" || fn.Parameters[1].Type != types.Int {
		t.Errorf("parameters: %+v", fn.Parameters)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.Return); !ok {
		t.Errorf("body: got %T, want *ast.Return", fn.Body[0])
	}
}

func TestVoidFunction(t *testing.T) {
	program := parseProgram(t, "func hello() { print 1; }")
	fn := program.Statements[0].(*ast.FunctionDefinition)
	if fn.ReturnType != types.None {
		t.Errorf("got return type %q, want none", fn.ReturnType)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	program := parseProgram(t, "var x int = 1 + 2 * 3;")
	decl := program.Statements[0].(*ast.VarDeclaration)

	add, ok := decl.Value.(*ast.BinaryOp)
	if !ok || add.Operator != "+" {
		t.Fatalf("top: got %#v, want +", decl.Value)
	}
	mul, ok := add.Right.(*ast.BinaryOp)
	if !ok || mul.Operator != "*" {
		t.Fatalf("right: got %#v, want *", add.Right)
	}
}

func TestComparisonBindsTighterThanLogical(t *testing.T) {
	// a < b && c < d parses as (a < b) && (c < d)
	program := parseProgram(t, "var x bool = a < b && c < d;")
	decl := program.Statements[0].(*ast.VarDeclaration)

	and, ok := decl.Value.(*ast.BinaryOp)
	if !ok || and.Operator != "&&" {
		t.Fatalf("top: got %#v, want &&", decl.Value)
	}
	left := and.Left.(*ast.BinaryOp)
	right := and.Right.(*ast.BinaryOp)
	if left.Operator != "<" || right.Operator != "<" {
		t.Errorf("got %s and %s, want < and <", left.Operator, right.Operator)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	program := parseProgram(t, "var x int = (1 + 2) * 3;")
	decl := program.Statements[0].(*ast.VarDeclaration)

	mul, ok := decl.Value.(*ast.BinaryOp)
	if !ok || mul.Operator != "*" {
		t.Fatalf("top: got %#v, want *", decl.Value)
	}
	if add, ok := mul.Left.(*ast.BinaryOp); !ok || add.Operator != "+" {
		t.Fatalf("left: got %#v, want +", mul.Left)
	}
}

func TestIfElseChain(t *testing.T) {
	program := parseProgram(t, `
if a < 1 {
	print 1;
} else if a < 2 {
	print 2;
} else {
	print 3;
}
`)
	stmt := program.Statements[0].(*ast.If)
	if stmt.Alternative == nil {
		t.Fatal("missing else branch")
	}
	nested, ok := stmt.Alternative[0].(*ast.If)
	if !ok {
		t.Fatalf("else-if: got %T, want *ast.If", stmt.Alternative[0])
	}
	if nested.Alternative == nil {
		t.Error("nested if lost its else branch")
	}
}

func TestWhileWithBreakAndContinue(t *testing.T) {
	program := parseProgram(t, "while true { break; continue; }")
	loop := program.Statements[0].(*ast.While)
	if len(loop.Body) != 2 {
		t.Fatalf("got %d body statements, want 2", len(loop.Body))
	}
	if _, ok := loop.Body[0].(*ast.Break); !ok {
		t.Errorf("got %T, want *ast.Break", loop.Body[0])
	}
	if _, ok := loop.Body[1].(*ast.Continue); !ok {
		t.Errorf("got %T, want *ast.Continue", loop.Body[1])
	}
}

func TestMemoryOperations(t *testing.T) {
	program := parseProgram(t, "var base int = ^100; `base = 7; var v int = `(base + 1);")

	decl := program.Statements[0].(*ast.VarDeclaration)
	if _, ok := decl.Value.(*ast.MemoryGrow); !ok {
		t.Errorf("^100: got %T, want *ast.MemoryGrow", decl.Value)
	}

	store := program.Statements[1].(*ast.Assignment)
	if _, ok := store.Target.(*ast.MemoryAccess); !ok {
		t.Errorf("store target: got %T, want *ast.MemoryAccess", store.Target)
	}

	load := program.Statements[2].(*ast.VarDeclaration)
	access, ok := load.Value.(*ast.MemoryAccess)
	if !ok {
		t.Fatalf("load: got %T, want *ast.MemoryAccess", load.Value)
	}
	if _, ok := access.Address.(*ast.BinaryOp); !ok {
		t.Errorf("address: got %T, want *ast.BinaryOp", access.Address)
	}
}

func TestCasts(t *testing.T) {
	program := parseProgram(t, "var x float = float(1); var y int = int(2.5);")

	toFloat := program.Statements[0].(*ast.VarDeclaration).Value.(*ast.Cast)
	if toFloat.Target != types.Float {
		t.Errorf("got target %s, want float", toFloat.Target)
	}
	toInt := program.Statements[1].(*ast.VarDeclaration).Value.(*ast.Cast)
	if toInt.Target != types.Int {
		t.Errorf("got target %s, want int", toInt.Target)
	}
}

func TestCallStatementAndExpression(t *testing.T) {
	program := parseProgram(t, "f(1, 2); var x int = g() + 1;")

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.Call)
	if !ok || call.Name != "f" || len(call.Arguments) != 2 {
		t.Errorf("got %#v", stmt.Expression)
	}

	decl := program.Statements[1].(*ast.VarDeclaration)
	add := decl.Value.(*ast.BinaryOp)
	if _, ok := add.Left.(*ast.Call); !ok {
		t.Errorf("got %T, want *ast.Call", add.Left)
	}
}

func TestImportRejected(t *testing.T) {
	expectParserError(t, "import foo;", diagnostics.ErrP002)
}

func TestUnexpectedTokenReported(t *testing.T) {
	expectParserError(t, "var x int = ;", diagnostics.ErrP001)
	expectParserError(t, "x + 1;", diagnostics.ErrP001)
	expectParserError(t, "if x < 1 print 1;", diagnostics.ErrP001)
}

func TestRecoveryCollectsMultipleErrors(t *testing.T) {
	l := lexer.New("var x int = ;\nvar y float = ;\nvar z = w;")
	p := New(l.Tokenize())
	p.ParseProgram()
	if len(p.Errors()) < 3 {
		t.Errorf("expected at least 3 errors after recovery, got %d: %v", len(p.Errors()), p.Errors())
	}
}
