package lexer

import (
	"strings"
	"testing"
)

func TestLexerErrors_UnterminatedComment(t *testing.T) {
	input := "<< never closed\ntype"
	l := New(input)

	tok := l.NextToken()
	if tok.Type != TYPE {
		t.Fatalf("expected lexing to resume on the next line with TYPE, got %q", tok.Type)
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}

	err := l.Errors[0]
	if err.Kind != ErrUnterminatedComment {
		t.Fatalf("expected ErrUnterminatedComment, got %v", err.Kind)
	}
	if err.Span.Line != 1 || err.Span.Column != 1 {
		t.Fatalf("expected span line=1 column=1, got line=%d column=%d", err.Span.Line, err.Span.Column)
	}
	if err.Span.Start != 0 || err.Span.End != 15 {
		t.Fatalf("expected span [0,15), got [%d,%d)", err.Span.Start, err.Span.End)
	}
}

func TestLexerErrors_IllegalRune(t *testing.T) {
	l := New("x @ y")
	l.SetFilename("bad.alg")

	toks := l.Tokenize()
	if toks[1].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", toks[1].Type)
	}
	if toks[2].Type != IDENT || toks[2].Raw != "y" {
		t.Fatalf("expected lexing to continue after the illegal rune, got %+v", toks[2])
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}
	err := l.Errors[0]
	if err.Kind != ErrIllegalRune {
		t.Fatalf("expected ErrIllegalRune, got %v", err.Kind)
	}
	if !strings.Contains(err.Message, `"@"`) {
		t.Fatalf("expected message to quote the rune, got %q", err.Message)
	}
	if got := err.Error(); got != `bad.alg:1:3: illegal character "@"` {
		t.Fatalf("unexpected Error() %q", got)
	}
}

func TestLexerErrors_SingleAngleIsIllegal(t *testing.T) {
	l := New("< x")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for a lone '<', got %q", tok.Type)
	}
}
