package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	errors []*diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Errors returns the diagnostics collected while scanning.
func (l *Lexer) Errors() []*diagnostics.DiagnosticError {
	return l.errors
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// Tokenize scans the whole input, always ending with an EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespaceAndComments()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: l.line, Column: l.column - 1}
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NE, Lexeme: "!=", Literal: "!=", Line: l.line, Column: l.column - 1}
		} else {
			tok = l.newToken(token.NOT)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LE, Lexeme: "<=", Literal: "<=", Line: l.line, Column: l.column - 1}
		} else {
			tok = l.newToken(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GE, Lexeme: ">=", Literal: ">=", Line: l.line, Column: l.column - 1}
		} else {
			tok = l.newToken(token.GT)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = token.Token{Type: token.AND, Lexeme: "&&", Literal: "&&", Line: l.line, Column: l.column - 1}
		} else {
			tok = l.illegalToken("unexpected character '&', did you mean '&&'?")
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = token.Token{Type: token.OR, Lexeme: "||", Literal: "||", Line: l.line, Column: l.column - 1}
		} else {
			tok = l.illegalToken("unexpected character '|', did you mean '||'?")
		}
	case '+':
		tok = l.newToken(token.PLUS)
	case '-':
		tok = l.newToken(token.MINUS)
	case '*':
		tok = l.newToken(token.STAR)
	case '/':
		tok = l.newToken(token.SLASH)
	case '^':
		tok = l.newToken(token.CARET)
	case '`':
		tok = l.newToken(token.BACKTICK)
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case ',':
		tok = l.newToken(token.COMMA)
	case ';':
		tok = l.newToken(token.SEMICOLON)
	case '\'':
		return l.readCharLiteral()
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.illegalToken(fmt.Sprintf("illegal character %q", l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType token.TokenType) token.Token {
	lexeme := string(l.ch)
	return token.Token{Type: tokenType, Lexeme: lexeme, Literal: lexeme, Line: l.line, Column: l.column}
}

func (l *Lexer) illegalToken(msg string) token.Token {
	tok := token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Literal: msg, Line: l.line, Column: l.column}
	l.errors = append(l.errors, diagnostics.NewError(diagnostics.ErrL001, tok, msg))
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar() // consume '/'
			l.readChar() // consume '*'
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch == 0 {
				tok := token.Token{Type: token.ILLEGAL, Lexeme: "/*", Line: l.line, Column: l.column}
				l.errors = append(l.errors, diagnostics.NewError(diagnostics.ErrL002, tok, "unterminated block comment"))
				return
			}
			l.readChar() // consume '*'
			l.readChar() // consume '/'
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() token.Token {
	startLine, startCol := l.line, l.column
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{
		Type:    token.LookupIdent(lexeme),
		Lexeme:  lexeme,
		Literal: lexeme,
		Line:    startLine,
		Column:  startCol,
	}
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
		lexeme := l.input[start:l.position]
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return l.malformedLiteral(lexeme, "invalid float literal", startLine, startCol)
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
	}

	lexeme := l.input[start:l.position]
	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return l.malformedLiteral(lexeme, "integer literal out of range", startLine, startCol)
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

// readCharLiteral scans 'x' with the usual single-character escapes and
// hexadecimal byte escapes \xNN.
func (l *Lexer) readCharLiteral() token.Token {
	startLine, startCol := l.line, l.column
	l.readChar() // consume opening quote

	var value rune
	switch {
	case l.ch == 0 || l.ch == '\n':
		return l.malformedLiteral("'", "unterminated character literal", startLine, startCol)
	case l.ch == '\\':
		l.readChar()
		switch l.ch {
		case 'n':
			value = '\n'
		case 'r':
			value = '\r'
		case 't':
			value = '\t'
		case '\'':
			value = '\''
		case '"':
			value = '"'
		case '\\':
			value = '\\'
		case 'x':
			hi := l.peekChar()
			l.readChar()
			lo := l.peekChar()
			l.readChar()
			n, err := strconv.ParseUint(string([]rune{hi, lo}), 16, 8)
			if err != nil {
				return l.malformedLiteral("\\x", "invalid hexadecimal escape in character literal", startLine, startCol)
			}
			value = rune(n)
		default:
			return l.malformedLiteral(string(l.ch), fmt.Sprintf("unknown escape '\\%c' in character literal", l.ch), startLine, startCol)
		}
	default:
		value = l.ch
	}
	l.readChar() // consume the character

	if l.ch != '\'' {
		return l.malformedLiteral(string(value), "unterminated character literal", startLine, startCol)
	}
	l.readChar() // consume closing quote

	return token.Token{
		Type:    token.CHAR,
		Lexeme:  "'" + string(value) + "'",
		Literal: value,
		Line:    startLine,
		Column:  startCol,
	}
}

func (l *Lexer) malformedLiteral(lexeme, msg string, line, col int) token.Token {
	tok := token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: msg, Line: line, Column: col}
	l.errors = append(l.errors, diagnostics.NewError(diagnostics.ErrL002, tok, msg))
	return tok
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}
