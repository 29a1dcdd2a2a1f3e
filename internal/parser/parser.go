// Package parser builds the syntax tree from the token stream via recursive
// descent. Parse errors are collected as diagnostics; after an error the
// parser resynchronizes at the next ';' or '}' and keeps going, so a single
// run reports every malformed statement.
package parser

import (
	"fmt"

	"github.com/goxlang/gox/internal/ast"
	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/token"
	"github.com/goxlang/gox/internal/types"
)

type Parser struct {
	tokens []token.Token
	pos    int

	errors []*diagnostics.DiagnosticError
}

// New builds a parser over a token stream. Illegal tokens are dropped
// here: the lexer already reported them, and keeping them would only
// produce a second diagnostic for the same character.
func New(tokens []token.Token) *Parser {
	kept := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != token.ILLEGAL {
			kept = append(kept, tok)
		}
	}
	return &Parser{tokens: kept}
}

// Errors returns the diagnostics collected while parsing.
func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

// ParseProgram consumes the whole token stream.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.atEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

// --- token helpers ---

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) check(t token.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or records a diagnostic.
func (p *Parser) expect(t token.TokenType, msg string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorAt(p.peek(), msg)
	return p.peek(), false
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP001, tok, msg))
}

// synchronize skips tokens until a statement boundary so one malformed
// statement does not cascade.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		tok := p.advance()
		if tok.Type == token.SEMICOLON || tok.Type == token.RBRACE {
			return
		}
		switch p.peek().Type {
		case token.VAR, token.CONST, token.FUNC, token.IF, token.WHILE,
			token.BREAK, token.CONTINUE, token.RETURN, token.PRINT:
			return
		}
	}
}

// --- statements ---

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case token.VAR, token.CONST:
		return p.parseDeclaration()
	case token.FUNC:
		return p.parseFunctionDefinition()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		tok := p.advance()
		p.expect(token.SEMICOLON, "expected ';' after break")
		return &ast.Break{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		p.expect(token.SEMICOLON, "expected ';' after continue")
		return &ast.Continue{Token: tok}
	case token.RETURN:
		return p.parseReturn()
	case token.PRINT:
		return p.parsePrint()
	case token.IMPORT:
		tok := p.advance()
		p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, tok,
			"import declarations are not supported: a program is a single translation unit"))
		p.synchronize()
		return nil
	case token.BACKTICK:
		return p.parseMemoryAssignment()
	case token.IDENT:
		return p.parseIdentStatement()
	default:
		p.errorAt(p.peek(), fmt.Sprintf("unexpected token %q", p.peek().Lexeme))
		p.synchronize()
		return nil
	}
}

// parseDeclaration handles both var and const declarations. The declared
// type may be omitted when it is inferable from a literal initializer.
func (p *Parser) parseDeclaration() ast.Statement {
	kw := p.advance() // var or const
	isConst := kw.Type == token.CONST

	nameTok, ok := p.expect(token.IDENT, "expected name after 'var'/'const'")
	if !ok {
		p.synchronize()
		return nil
	}

	declType := types.None
	if token.IsTypeName(p.peek().Type) {
		declType = typeFromToken(p.advance().Type)
	}

	var value ast.Expression
	if p.match(token.ASSIGN) {
		value = p.parseExpression()
		if declType == types.None {
			if lit, isLit := value.(*ast.Literal); isLit {
				declType = lit.Type
			}
		}
	}

	if isConst && value == nil {
		p.errorAt(nameTok, fmt.Sprintf("constant '%s' must have an initializer", nameTok.Lexeme))
	}
	if declType == types.None {
		p.errorAt(nameTok, fmt.Sprintf("cannot determine the type of '%s': annotate it or initialize it with a literal", nameTok.Lexeme))
	}

	p.expect(token.SEMICOLON, "expected ';' after declaration")

	if isConst {
		return &ast.ConstDeclaration{Token: kw, Name: nameTok.Lexeme, Type: declType, Value: value}
	}
	return &ast.VarDeclaration{Token: kw, Name: nameTok.Lexeme, Type: declType, Value: value}
}

func (p *Parser) parseFunctionDefinition() ast.Statement {
	kw := p.advance() // func
	nameTok, ok := p.expect(token.IDENT, "expected function name after 'func'")
	if !ok {
		p.synchronize()
		return nil
	}

	p.expect(token.LPAREN, "expected '(' after function name")
	params := p.parseParameters()
	p.expect(token.RPAREN, "expected ')' after parameters")

	retType := types.None
	if token.IsTypeName(p.peek().Type) {
		retType = typeFromToken(p.advance().Type)
	}

	body := p.parseBlock("function body")

	return &ast.FunctionDefinition{
		Token:      kw,
		Name:       nameTok.Lexeme,
		Parameters: params,
		ReturnType: retType,
		Body:       body,
	}
}

func (p *Parser) parseParameters() []*ast.Parameter {
	var params []*ast.Parameter
	if p.check(token.RPAREN) {
		return params
	}
	for {
		nameTok, ok := p.expect(token.IDENT, "expected parameter name")
		if !ok {
			return params
		}
		if !token.IsTypeName(p.peek().Type) {
			p.errorAt(p.peek(), fmt.Sprintf("expected a type after parameter '%s'", nameTok.Lexeme))
			return params
		}
		paramType := typeFromToken(p.advance().Type)
		params = append(params, &ast.Parameter{Token: nameTok, Name: nameTok.Lexeme, Type: paramType})
		if !p.match(token.COMMA) {
			return params
		}
	}
}

func (p *Parser) parseBlock(what string) []ast.Statement {
	p.expect(token.LBRACE, "expected '{' to open "+what)
	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.atEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(token.RBRACE, "expected '}' to close "+what)
	return stmts
}

func (p *Parser) parseIf() ast.Statement {
	kw := p.advance() // if
	cond := p.parseExpression()
	consequence := p.parseBlock("if body")

	var alternative []ast.Statement
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			// else-if chains nest as a single-statement alternative
			alternative = []ast.Statement{p.parseIf()}
		} else {
			alternative = p.parseBlock("else body")
		}
	}

	return &ast.If{Token: kw, Condition: cond, Consequence: consequence, Alternative: alternative}
}

func (p *Parser) parseWhile() ast.Statement {
	kw := p.advance() // while
	cond := p.parseExpression()
	body := p.parseBlock("while body")
	return &ast.While{Token: kw, Condition: cond, Body: body}
}

func (p *Parser) parseReturn() ast.Statement {
	kw := p.advance() // return
	if p.match(token.SEMICOLON) {
		return &ast.Return{Token: kw}
	}
	value := p.parseExpression()
	p.expect(token.SEMICOLON, "expected ';' after return value")
	return &ast.Return{Token: kw, Value: value}
}

func (p *Parser) parsePrint() ast.Statement {
	kw := p.advance() // print
	value := p.parseExpression()
	p.expect(token.SEMICOLON, "expected ';' after print value")
	return &ast.Print{Token: kw, Value: value}
}

// parseMemoryAssignment parses a memory store statement, "`addr = value;".
func (p *Parser) parseMemoryAssignment() ast.Statement {
	target := p.parseMemoryAccess()
	eq, ok := p.expect(token.ASSIGN, "expected '=' after memory address")
	if !ok {
		p.synchronize()
		return nil
	}
	value := p.parseExpression()
	p.expect(token.SEMICOLON, "expected ';' after assignment")
	return &ast.Assignment{Token: eq, Target: target, Value: value}
}

// parseIdentStatement disambiguates `name = expr;` from `name(args);`.
func (p *Parser) parseIdentStatement() ast.Statement {
	if p.peekNext().Type == token.LPAREN {
		callTok := p.peek()
		call := p.parsePrimary()
		p.expect(token.SEMICOLON, "expected ';' after call")
		return &ast.ExpressionStatement{Token: callTok, Expression: call}
	}

	nameTok := p.advance()
	target := &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}
	eq, ok := p.expect(token.ASSIGN, fmt.Sprintf("unexpected token %q, expected '=' or '(' after identifier", p.peek().Lexeme))
	if !ok {
		p.synchronize()
		return nil
	}
	value := p.parseExpression()
	p.expect(token.SEMICOLON, "expected ';' after assignment")
	return &ast.Assignment{Token: eq, Target: target, Value: value}
}

// --- expressions ---
//
// Precedence, loosest first: || then && then comparisons then + - then * /
// then unary then primary.

func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(token.OR) {
		op := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryOp{Token: op, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseComparison()
	for p.check(token.AND) {
		op := p.advance()
		right := p.parseComparison()
		left = &ast.BinaryOp{Token: op, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for {
		switch p.peek().Type {
		case token.LT, token.LE, token.GT, token.GE, token.EQ, token.NE:
			op := p.advance()
			right := p.parseAdditive()
			left = &ast.BinaryOp{Token: op, Operator: op.Lexeme, Left: left, Right: right}
		default:
			return left
		}
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{Token: op, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryOp{Token: op, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.peek().Type {
	case token.PLUS, token.MINUS, token.NOT:
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryOp{Token: op, Operator: op.Lexeme, Operand: operand}
	case token.CARET:
		op := p.advance()
		size := p.parseUnary()
		return &ast.MemoryGrow{Token: op, Size: size}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Type {
	case token.INT:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Int, Value: tok.Literal.(int64)}
	case token.FLOAT:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Float, Value: tok.Literal.(float64)}
	case token.CHAR:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Char, Value: tok.Literal.(rune)}
	case token.TRUE:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Bool, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Bool, Value: false}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN, "expected ')'")
		return expr
	case token.BACKTICK:
		return p.parseMemoryAccess()
	case token.INT_TYPE, token.FLOAT_TYPE, token.BOOL_TYPE, token.CHAR_TYPE:
		return p.parseCast()
	case token.IDENT:
		p.advance()
		if p.check(token.LPAREN) {
			return p.parseCallArguments(tok)
		}
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}
	default:
		p.errorAt(tok, fmt.Sprintf("unexpected token %q in expression", tok.Lexeme))
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Int, Value: int64(0)}
	}
}

// parseMemoryAccess parses `name or `(expr).
func (p *Parser) parseMemoryAccess() *ast.MemoryAccess {
	tick := p.advance() // `
	var addr ast.Expression
	switch p.peek().Type {
	case token.IDENT:
		nameTok := p.advance()
		addr = &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}
	case token.LPAREN:
		p.advance()
		addr = p.parseExpression()
		p.expect(token.RPAREN, "expected ')' after memory address")
	default:
		p.errorAt(p.peek(), "expected an identifier or '(' after '`'")
		addr = &ast.Literal{Token: tick, Type: types.Int, Value: int64(0)}
	}
	return &ast.MemoryAccess{Token: tick, Address: addr}
}

// parseCast parses the conversion syntax int(e) / float(e). The other two
// type names are accepted here for a better error from the checker.
func (p *Parser) parseCast() ast.Expression {
	typeTok := p.advance()
	p.expect(token.LPAREN, fmt.Sprintf("expected '(' after %s", typeTok.Lexeme))
	value := p.parseExpression()
	p.expect(token.RPAREN, "expected ')' after conversion operand")
	return &ast.Cast{Token: typeTok, Target: typeFromToken(typeTok.Type), Value: value}
}

func (p *Parser) parseCallArguments(nameTok token.Token) ast.Expression {
	p.advance() // (
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		args = append(args, p.parseExpression())
		for p.match(token.COMMA) {
			args = append(args, p.parseExpression())
		}
	}
	p.expect(token.RPAREN, "expected ')' after arguments")
	return &ast.Call{Token: nameTok, Name: nameTok.Lexeme, Arguments: args}
}

func typeFromToken(t token.TokenType) types.Type {
	switch t {
	case token.INT_TYPE:
		return types.Int
	case token.FLOAT_TYPE:
		return types.Float
	case token.BOOL_TYPE:
		return types.Bool
	case token.CHAR_TYPE:
		return types.Char
	}
	return types.None
}
