// Package types defines the primitive types of the Gox language and the
// table of legal operator/operand combinations. It is a pure rule table:
// the checker asks questions, nothing here carries state.
package types

// Type names a primitive Gox type. The zero value means "no type"
// (statements, void functions, failed checks).
type Type string

const (
	None  Type = ""
	Int   Type = "int"
	Float Type = "float"
	Bool  Type = "bool"
	Char  Type = "char"
)

// Valid reports whether name is one of the four primitive types.
func Valid(name Type) bool {
	switch name {
	case Int, Float, Bool, Char:
		return true
	}
	return false
}

// Numeric reports whether t supports arithmetic.
func Numeric(t Type) bool {
	return t == Int || t == Float
}

type binKey struct {
	left  Type
	op    string
	right Type
}

type unaryKey struct {
	op      string
	operand Type
}

// Arithmetic is defined for matching numeric operands only: mixing int and
// float never type-checks. Comparisons need matching int, float or char
// operands; bool supports equality and the logical connectives.
var binOps = map[binKey]Type{
	{Int, "+", Int}: Int,
	{Int, "-", Int}: Int,
	{Int, "*", Int}: Int,
	{Int, "/", Int}: Int,

	{Int, "<", Int}:  Bool,
	{Int, "<=", Int}: Bool,
	{Int, ">", Int}:  Bool,
	{Int, ">=", Int}: Bool,
	{Int, "==", Int}: Bool,
	{Int, "!=", Int}: Bool,

	{Float, "+", Float}: Float,
	{Float, "-", Float}: Float,
	{Float, "*", Float}: Float,
	{Float, "/", Float}: Float,

	{Float, "<", Float}:  Bool,
	{Float, "<=", Float}: Bool,
	{Float, ">", Float}:  Bool,
	{Float, ">=", Float}: Bool,
	{Float, "==", Float}: Bool,
	{Float, "!=", Float}: Bool,

	{Bool, "&&", Bool}: Bool,
	{Bool, "||", Bool}: Bool,
	{Bool, "==", Bool}: Bool,
	{Bool, "!=", Bool}: Bool,

	{Char, "<", Char}:  Bool,
	{Char, "<=", Char}: Bool,
	{Char, ">", Char}:  Bool,
	{Char, ">=", Char}: Bool,
	{Char, "==", Char}: Bool,
	{Char, "!=", Char}: Bool,
}

var unaryOps = map[unaryKey]Type{
	{"+", Int}:   Int,
	{"-", Int}:   Int,
	{"+", Float}: Float,
	{"-", Float}: Float,
	{"!", Bool}:  Bool,
	{"^", Int}:   Int, // memory grow: size in, base address out
}

// ResultType returns the result type of a binary operator applied to the
// given operand types, or false if the combination is not in the table.
func ResultType(op string, left, right Type) (Type, bool) {
	t, ok := binOps[binKey{left, op, right}]
	return t, ok
}

// UnaryResultType returns the result type of a unary operator, or false if
// the operator does not accept the operand type.
func UnaryResultType(op string, operand Type) (Type, bool) {
	t, ok := unaryOps[unaryKey{op, operand}]
	return t, ok
}

// AssignCompatible reports whether a value of type src may be stored into a
// target declared as dst. There is no implicit coercion.
func AssignCompatible(dst, src Type) bool {
	return dst == src && dst != None
}

// CastAllowed reports whether an explicit conversion from src to dst exists.
// Only the numeric conversions int(x) and float(x) are defined.
func CastAllowed(dst, src Type) bool {
	switch {
	case dst == Int && src == Float, dst == Float && src == Int:
		return true
	case dst == src && Numeric(dst):
		return true
	}
	return false
}
