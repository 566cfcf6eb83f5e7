package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the source
	End      int    // exclusive end index
}

// String renders the span as "file:line:col" or "(line, col)" when no file is attached.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("(%d, %d)", s.Line, s.Column)
}

// IsValid reports whether the span points somewhere in a source.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	out := s
	if other.Start < out.Start {
		out.Start, out.Line, out.Column = other.Start, other.Line, other.Column
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source
	Span  Span
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT TokenType = "IDENT" // Bool, eq, x
	INT   TokenType = "INT"   // 1343456

	// Delimiters
	DOT      TokenType = "."
	COLON    TokenType = ":"
	PIPE     TokenType = "|"
	ARROW    TokenType = "->"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	TYPE     TokenType = "TYPE"
	FUN      TokenType = "FUN"
	ADD      TokenType = "ADD"
	MUL      TokenType = "MUL"
	INT_TYPE TokenType = "INT_TYPE"
)

var keywords = map[string]TokenType{
	"type": TYPE,
	"fun":  FUN,
	"add":  ADD,
	"mul":  MUL,
	"int":  INT_TYPE,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether name is reserved and can never be an identifier.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
