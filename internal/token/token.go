package token

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT TokenType = "IDENT"
	INT   TokenType = "INT"
	FLOAT TokenType = "FLOAT"
	CHAR  TokenType = "CHAR"

	// Operators
	PLUS   TokenType = "+"
	MINUS  TokenType = "-"
	STAR   TokenType = "*"
	SLASH  TokenType = "/"
	ASSIGN TokenType = "="

	LT TokenType = "<"
	GT TokenType = ">"
	LE TokenType = "<="
	GE TokenType = ">="
	EQ TokenType = "=="
	NE TokenType = "!="

	AND TokenType = "&&"
	OR  TokenType = "||"
	NOT TokenType = "!"

	// Memory operators
	CARET    TokenType = "^" // reserve memory, yields base address
	BACKTICK TokenType = "`" // dereference an address

	// Delimiters
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"

	// Keywords
	VAR      TokenType = "VAR"
	CONST    TokenType = "CONST"
	FUNC     TokenType = "FUNC"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	RETURN   TokenType = "RETURN"
	PRINT    TokenType = "PRINT"
	IMPORT   TokenType = "IMPORT"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"

	// Type names
	INT_TYPE   TokenType = "INT_TYPE"
	FLOAT_TYPE TokenType = "FLOAT_TYPE"
	BOOL_TYPE  TokenType = "BOOL_TYPE"
	CHAR_TYPE  TokenType = "CHAR_TYPE"
)

// Token is a single lexical unit with its source position.
// Literal holds the decoded value for literals (int64, float64, rune);
// for everything else it mirrors Lexeme.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"var":      VAR,
	"const":    CONST,
	"func":     FUNC,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"print":    PRINT,
	"import":   IMPORT,
	"true":     TRUE,
	"false":    FALSE,
	"int":      INT_TYPE,
	"float":    FLOAT_TYPE,
	"bool":     BOOL_TYPE,
	"char":     CHAR_TYPE,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsTypeName reports whether t names one of the primitive types.
func IsTypeName(t TokenType) bool {
	switch t {
	case INT_TYPE, FLOAT_TYPE, BOOL_TYPE, CHAR_TYPE:
		return true
	}
	return false
}
