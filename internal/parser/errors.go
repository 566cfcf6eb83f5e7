package parser

import (
	"fmt"
	"strings"

	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/lexer"
)

// ParseError captures a lexical or syntax error with location context.
type ParseError struct {
	Message string
	Span    lexer.Span
	Stage   diag.Stage
	Code    diag.Code
	// Found is the type of the offending token; EOF means the input ended early.
	Found lexer.TokenType
}

func (e ParseError) Error() string {
	return e.Span.String() + ": " + e.Message
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	span := diag.Span{
		Filename: e.Span.Filename,
		Line:     e.Span.Line,
		Column:   e.Span.Column,
		Start:    e.Span.Start,
		End:      e.Span.End,
	}
	d := diag.Diagnostic{
		Stage:    e.Stage,
		Severity: diag.SeverityError,
		Code:     e.Code,
		Message:  e.Message,
		Span:     span,
	}
	if span.IsValid() {
		d = d.WithPrimarySpan(span, "")
	}
	return d
}

// ErrorList is the error returned for lexical and syntax failures.
type ErrorList []ParseError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Incomplete reports whether the parse failed only because the input ended
// early, so that appending more text could make it succeed.
func (l ErrorList) Incomplete() bool {
	return len(l) == 1 && l[0].Stage == diag.StageParser && l[0].Found == lexer.EOF
}

func lexerErrors(errs []lexer.LexerError) ErrorList {
	out := make(ErrorList, 0, len(errs))
	for _, e := range errs {
		code := e.ToDiagnostic().Code
		out = append(out, ParseError{
			Message: e.Message,
			Span:    e.Span,
			Stage:   diag.StageLexer,
			Code:    code,
			Found:   lexer.ILLEGAL,
		})
	}
	return out
}

// fail records err and aborts the parse. Lexical errors located before the
// failure point take precedence, since they usually caused it.
func (p *Parser) fail(err ParseError) {
	var earlier []lexer.LexerError
	for _, le := range p.lx.Errors {
		if le.Span.Start <= p.curTok.Span.Start {
			earlier = append(earlier, le)
		}
	}
	if len(earlier) > 0 {
		p.err = lexerErrors(earlier)
	} else {
		p.err = ErrorList{err}
	}
	panic(bailout{})
}

// failExpected reports that the current token does not fit here.
func (p *Parser) failExpected(expected string) {
	found := p.curTok.Raw
	if p.curTok.Type == lexer.EOF {
		found = "end of input"
	} else {
		found = "`" + found + "`"
	}
	p.fail(ParseError{
		Message: fmt.Sprintf("expected %s, found %s", expected, found),
		Span:    p.curTok.Span,
		Stage:   diag.StageParser,
		Code:    diag.CodeParseUnexpectedToken,
		Found:   p.curTok.Type,
	})
}

// describe joins token descriptions as "a, b or c".
func describe(items ...string) string {
	if len(items) <= 1 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
