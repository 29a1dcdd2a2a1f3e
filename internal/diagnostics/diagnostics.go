package diagnostics

import (
	"fmt"

	"github.com/goxlang/gox/internal/token"
)

// ErrorCode identifies a class of diagnostic.
type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // malformed literal

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // unsupported construct (e.g. import)

	// Checker
	ErrC001 ErrorCode = "C001" // duplicate symbol
	ErrC002 ErrorCode = "C002" // undeclared symbol
	ErrC003 ErrorCode = "C003" // type error
	ErrC004 ErrorCode = "C004" // assignment to constant
	ErrC005 ErrorCode = "C005" // break/continue outside loop
	ErrC006 ErrorCode = "C006" // return type mismatch
	ErrC007 ErrorCode = "C007" // bad call arguments
	ErrC008 ErrorCode = "C008" // nested function definition
)

// DiagnosticError is a compile-time diagnostic tied to a source position.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// Line returns the source line the diagnostic points at.
func (e *DiagnosticError) Line() int { return e.Token.Line }
