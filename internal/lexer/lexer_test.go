package lexer

import (
	"testing"

	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	toks := l.Tokenize()
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
	return toks
}

func TestOperatorsAndDelimiters(t *testing.T) {
	input := "= == ! != < <= > >= + - * / && || ^ ` ( ) { } , ;"
	want := []token.TokenType{
		token.ASSIGN, token.EQ, token.NOT, token.NE,
		token.LT, token.LE, token.GT, token.GE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.AND, token.OR, token.CARET, token.BACKTICK,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.COMMA, token.SEMICOLON, token.EOF,
	}

	toks := tokenize(t, input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "var const func if else while break continue return print true false int float bool char myVar _x"
	want := []token.TokenType{
		token.VAR, token.CONST, token.FUNC, token.IF, token.ELSE, token.WHILE,
		token.BREAK, token.CONTINUE, token.RETURN, token.PRINT,
		token.TRUE, token.FALSE,
		token.INT_TYPE, token.FLOAT_TYPE, token.BOOL_TYPE, token.CHAR_TYPE,
		token.IDENT, token.IDENT, token.EOF,
	}

	toks := tokenize(t, input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d (%q): got %s, want %s", i, toks[i].Lexeme, toks[i].Type, typ)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	toks := tokenize(t, "42 0 3.14 10.0")

	if toks[0].Type != token.INT || toks[0].Literal.(int64) != 42 {
		t.Errorf("42: got %v %v", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != token.INT || toks[1].Literal.(int64) != 0 {
		t.Errorf("0: got %v %v", toks[1].Type, toks[1].Literal)
	}
	if toks[2].Type != token.FLOAT || toks[2].Literal.(float64) != 3.14 {
		t.Errorf("3.14: got %v %v", toks[2].Type, toks[2].Literal)
	}
	if toks[3].Type != token.FLOAT || toks[3].Literal.(float64) != 10.0 {
		t.Errorf("10.0: got %v %v", toks[3].Type, toks[3].Literal)
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\t'`, '\t'},
		{`'\''`, '\''},
		{`'\\'`, '\\'},
		{`'\x41'`, 'A'},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.input)
		if toks[0].Type != token.CHAR {
			t.Errorf("%s: got type %s, want CHAR", tt.input, toks[0].Type)
			continue
		}
		if got := toks[0].Literal.(rune); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestComments(t *testing.T) {
	input := `
// a line comment
var x int; /* a block
comment */ var y int;
`
	toks := tokenize(t, input)
	var idents []string
	for _, tok := range toks {
		if tok.Type == token.IDENT {
			idents = append(idents, tok.Lexeme)
		}
	}
	if len(idents) != 2 || idents[0] != "x" || idents[1] != "y" {
		t.Errorf("got identifiers %v, want [x y]", idents)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := tokenize(t, "var x int;\nx = 1;")

	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("var: got %d:%d, want 1:1", toks[0].Line, toks[0].Column)
	}
	// "x" on the second line
	if toks[4].Line != 2 || toks[4].Column != 1 {
		t.Errorf("x: got %d:%d, want 2:1", toks[4].Line, toks[4].Column)
	}
}

func expectLexerError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	l := New(input)
	l.Tokenize()
	for _, err := range l.Errors() {
		if err.Code == code {
			return
		}
	}
	t.Fatalf("expected error %s, got %v\ninput: %s", code, l.Errors(), input)
}

func TestIllegalCharacter(t *testing.T) {
	expectLexerError(t, "var x int; @", diagnostics.ErrL001)
	expectLexerError(t, "x & y", diagnostics.ErrL001)
	expectLexerError(t, "x | y", diagnostics.ErrL001)
}

func TestMalformedLiterals(t *testing.T) {
	expectLexerError(t, "'ab'", diagnostics.ErrL002)
	expectLexerError(t, "'", diagnostics.ErrL002)
	expectLexerError(t, "99999999999999999999", diagnostics.ErrL002)
	expectLexerError(t, "/* never closed", diagnostics.ErrL002)
}

func TestLexingContinuesAfterError(t *testing.T) {
	l := New("@ var x int;")
	toks := l.Tokenize()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for '@'")
	}

	var sawVar bool
	for _, tok := range toks {
		if tok.Type == token.VAR {
			sawVar = true
		}
	}
	if !sawVar {
		t.Error("lexer should keep scanning after an illegal character")
	}
}
