// Package ast defines the syntax tree produced by the parser and consumed by
// the checker and the code generator. Nodes carry their primary token so
// diagnostics can point at a source line.
package ast

import (
	"github.com/goxlang/gox/internal/token"
	"github.com/goxlang/gox/internal/types"
)

// Node is the base interface for all syntax tree nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: one translation unit of top-level declarations
// and statements in source order.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// Parameter is a function parameter: name plus declared type.
type Parameter struct {
	Token token.Token // the parameter name token
	Name  string
	Type  types.Type
}

func (p *Parameter) TokenLiteral() string  { return p.Token.Lexeme }
func (p *Parameter) GetToken() token.Token { return p.Token }

// FunctionDefinition declares a named function.
// A zero ReturnType means the function returns nothing.
type FunctionDefinition struct {
	Token      token.Token // the 'func' token
	Name       string
	Parameters []*Parameter
	ReturnType types.Type
	Body       []Statement
}

func (fd *FunctionDefinition) statementNode()        {}
func (fd *FunctionDefinition) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDefinition) GetToken() token.Token { return fd.Token }

// VarDeclaration declares a mutable variable with an optional initializer.
type VarDeclaration struct {
	Token token.Token // the 'var' token
	Name  string
	Type  types.Type
	Value Expression // may be nil
}

func (vd *VarDeclaration) statementNode()        {}
func (vd *VarDeclaration) TokenLiteral() string  { return vd.Token.Lexeme }
func (vd *VarDeclaration) GetToken() token.Token { return vd.Token }

// ConstDeclaration declares an immutable binding. The initializer is
// mandatory; the declared type may be inferred from it by the parser.
type ConstDeclaration struct {
	Token token.Token // the 'const' token
	Name  string
	Type  types.Type
	Value Expression
}

func (cd *ConstDeclaration) statementNode()        {}
func (cd *ConstDeclaration) TokenLiteral() string  { return cd.Token.Lexeme }
func (cd *ConstDeclaration) GetToken() token.Token { return cd.Token }

// Assignment stores a value into a target. The target is either an
// *Identifier (variable) or a *MemoryAccess (raw memory write).
type Assignment struct {
	Token  token.Token // the '=' token
	Target Expression
	Value  Expression
}

func (a *Assignment) statementNode()        {}
func (a *Assignment) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token { return a.Token }

// If is a conditional with an optional else branch.
type If struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence []Statement
	Alternative []Statement // nil when there is no else
}

func (i *If) statementNode()        {}
func (i *If) TokenLiteral() string  { return i.Token.Lexeme }
func (i *If) GetToken() token.Token { return i.Token }

// While is a pre-test loop.
type While struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      []Statement
}

func (w *While) statementNode()        {}
func (w *While) TokenLiteral() string  { return w.Token.Lexeme }
func (w *While) GetToken() token.Token { return w.Token }

// Break exits the innermost enclosing while loop.
type Break struct {
	Token token.Token
}

func (b *Break) statementNode()        {}
func (b *Break) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Break) GetToken() token.Token { return b.Token }

// Continue jumps back to the innermost enclosing loop's condition.
type Continue struct {
	Token token.Token
}

func (c *Continue) statementNode()        {}
func (c *Continue) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Continue) GetToken() token.Token { return c.Token }

// Return exits the enclosing function, optionally with a value.
type Return struct {
	Token token.Token
	Value Expression // may be nil
}

func (r *Return) statementNode()        {}
func (r *Return) TokenLiteral() string  { return r.Token.Lexeme }
func (r *Return) GetToken() token.Token { return r.Token }

// Print writes one value to the program output.
type Print struct {
	Token token.Token
	Value Expression
}

func (p *Print) statementNode()        {}
func (p *Print) TokenLiteral() string  { return p.Token.Lexeme }
func (p *Print) GetToken() token.Token { return p.Token }

// ExpressionStatement is an expression in statement position (a call whose
// result is discarded).
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// Identifier is a use of a declared name.
type Identifier struct {
	Token token.Token
	Name  string
}

func (id *Identifier) expressionNode()       {}
func (id *Identifier) TokenLiteral() string  { return id.Token.Lexeme }
func (id *Identifier) GetToken() token.Token { return id.Token }

// Literal is a typed constant value. Value holds int64, float64, bool or
// rune according to Type.
type Literal struct {
	Token token.Token
	Type  types.Type
	Value interface{}
}

func (l *Literal) expressionNode()       {}
func (l *Literal) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Literal) GetToken() token.Token { return l.Token }

// BinaryOp applies an infix operator to two operands.
type BinaryOp struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (bo *BinaryOp) expressionNode()       {}
func (bo *BinaryOp) TokenLiteral() string  { return bo.Token.Lexeme }
func (bo *BinaryOp) GetToken() token.Token { return bo.Token }

// UnaryOp applies a prefix operator (+, -, !) to one operand.
type UnaryOp struct {
	Token    token.Token // the operator token
	Operator string
	Operand  Expression
}

func (uo *UnaryOp) expressionNode()       {}
func (uo *UnaryOp) TokenLiteral() string  { return uo.Token.Lexeme }
func (uo *UnaryOp) GetToken() token.Token { return uo.Token }

// Call invokes a named function with positional arguments.
type Call struct {
	Token     token.Token // the function name token
	Name      string
	Arguments []Expression
}

func (c *Call) expressionNode()       {}
func (c *Call) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Call) GetToken() token.Token { return c.Token }

// Cast is an explicit numeric conversion: int(e) or float(e).
type Cast struct {
	Token  token.Token // the type name token
	Target types.Type
	Value  Expression
}

func (c *Cast) expressionNode()       {}
func (c *Cast) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Cast) GetToken() token.Token { return c.Token }

// MemoryGrow is the ^ operator: reserves Size additional memory cells and
// evaluates to the base address of the new region.
type MemoryGrow struct {
	Token token.Token // the '^' token
	Size  Expression
}

func (mg *MemoryGrow) expressionNode()       {}
func (mg *MemoryGrow) TokenLiteral() string  { return mg.Token.Lexeme }
func (mg *MemoryGrow) GetToken() token.Token { return mg.Token }

// MemoryAccess is the backtick operator: as an expression it reads the cell
// at Address; as an Assignment target it writes it.
type MemoryAccess struct {
	Token   token.Token // the '`' token
	Address Expression
}

func (ma *MemoryAccess) expressionNode()       {}
func (ma *MemoryAccess) TokenLiteral() string  { return ma.Token.Lexeme }
func (ma *MemoryAccess) GetToken() token.Token { return ma.Token }
