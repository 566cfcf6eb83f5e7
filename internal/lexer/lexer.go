package lexer

import (
	"strconv"

	"github.com/algc-lang/algc/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedComment LexerErrorKind = iota
	ErrIllegalRune
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedComment:
		return diag.CodeLexerUnterminatedComment
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// Error implements the error interface.
func (e LexerError) Error() string {
	return e.Span.String() + ": " + e.Message
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	span.Filename = l.filename
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read()
	return l
}

// SetFilename attributes every span produced from now on to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// read advances the lexer to the next character.
// line/column always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// Past the last rune; normalize to a virtual EOF position
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			l.column = 1
		}
		l.pos = inputLen
		l.ch = 0
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, raw string) Token {
	return Token{
		Type: tokType,
		Raw:  raw,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// skipComment consumes a `<< ... >>` comment whose opening `<<` has been read.
// Comments never span lines.
func (l *Lexer) skipComment(startLine, startColumn, startPos int) {
	for {
		if l.ch == 0 || l.ch == '\n' || l.ch == '\r' {
			l.addError(
				ErrUnterminatedComment,
				"unterminated comment",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return
		}
		if l.ch == '>' && l.peek() == '>' {
			l.read()
			l.read()
			return
		}
		l.read()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

var punctuation = map[rune]TokenType{
	'.': DOT,
	':': COLON,
	'|': PIPE,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		startLine, startColumn, startPos := l.currentSpanStart()

		switch {
		case l.ch == 0:
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "")

		case l.ch == '<' && l.peek() == '<':
			l.read()
			l.read()
			l.skipComment(startLine, startColumn, startPos)
			continue

		case l.ch == '-' && l.peek() == '>':
			l.read()
			l.read()
			return l.makeToken(ARROW, startLine, startColumn, startPos, l.pos, "->")

		case isLetter(l.ch):
			literal := l.readIdentifier()
			return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, l.pos, literal)

		case isDigit(l.ch):
			literal := l.readNumber()
			return l.makeToken(INT, startLine, startColumn, startPos, l.pos, literal)
		}

		if tokType, ok := punctuation[l.ch]; ok {
			raw := string(l.ch)
			l.read()
			return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw)
		}

		raw := string(l.ch)
		l.read()
		tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw)
		l.addError(
			ErrIllegalRune,
			"illegal character "+strconv.Quote(raw),
			tok.Span,
		)
		return tok
	}
}

// Tokenize lexes the whole input, including the trailing EOF token.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

// Identifiers are ASCII: [A-Za-z_][A-Za-z_0-9]*.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
