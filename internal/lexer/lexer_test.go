package lexer

import (
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `type Bool : True | False .`

	tests := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{TYPE, "type"},
		{IDENT, "Bool"},
		{COLON, ":"},
		{IDENT, "True"},
		{PIPE, "|"},
		{IDENT, "False"},
		{DOT, "."},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestNextToken_FunctionDefinition(t *testing.T) {
	input := `fun (eq int Int) -> int : (eq a [Cons x xs]) -> (add a 10) .`

	expected := []TokenType{
		FUN, LPAREN, IDENT, INT_TYPE, IDENT, RPAREN, ARROW, INT_TYPE, COLON,
		LPAREN, IDENT, IDENT, LBRACKET, IDENT, IDENT, IDENT, RBRACKET, RPAREN, ARROW,
		LPAREN, ADD, IDENT, INT, RPAREN, DOT, EOF,
	}

	l := New(input)
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q (%q)", i, typ, tok.Type, tok.Raw)
		}
	}
}

func TestNextToken_SkipsComments(t *testing.T) {
	input := "<< a comment with type and fun >>\nfun << inline >> mul"

	l := New(input)
	toks := l.Tokenize()

	if len(l.Errors) != 0 {
		t.Fatalf("expected no lexer errors, got %v", l.Errors)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	if toks[0].Type != FUN || toks[1].Type != MUL || toks[2].Type != EOF {
		t.Fatalf("unexpected token stream %v", toks)
	}
}

func TestNextToken_Spans(t *testing.T) {
	input := "type T :\n  C int ."

	l := New(input)
	l.SetFilename("t.alg")
	toks := l.Tokenize()

	tests := []struct {
		raw    string
		line   int
		column int
		start  int
		end    int
	}{
		{"type", 1, 1, 0, 4},
		{"T", 1, 6, 5, 6},
		{":", 1, 8, 7, 8},
		{"C", 2, 3, 11, 12},
		{"int", 2, 5, 13, 16},
		{".", 2, 9, 17, 18},
	}

	for i, tt := range tests {
		tok := toks[i]
		if tok.Raw != tt.raw {
			t.Fatalf("tests[%d] - expected raw %q, got %q", i, tt.raw, tok.Raw)
		}
		if tok.Span.Line != tt.line || tok.Span.Column != tt.column {
			t.Fatalf("tests[%d] - expected %d:%d, got %d:%d", i, tt.line, tt.column, tok.Span.Line, tok.Span.Column)
		}
		if tok.Span.Start != tt.start || tok.Span.End != tt.end {
			t.Fatalf("tests[%d] - expected offsets [%d,%d), got [%d,%d)", i, tt.start, tt.end, tok.Span.Start, tok.Span.End)
		}
		if tok.Span.Filename != "t.alg" {
			t.Fatalf("tests[%d] - expected filename t.alg, got %q", i, tok.Span.Filename)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	tests := map[string]TokenType{
		"type":  TYPE,
		"fun":   FUN,
		"add":   ADD,
		"mul":   MUL,
		"int":   INT_TYPE,
		"Int":   IDENT,
		"adder": IDENT,
	}
	for ident, want := range tests {
		if got := LookupIdent(ident); got != want {
			t.Errorf("LookupIdent(%q) = %q, want %q", ident, got, want)
		}
	}
}

func TestSpanString(t *testing.T) {
	if got := (Span{Line: 3, Column: 7}).String(); got != "(3, 7)" {
		t.Fatalf("expected (3, 7), got %q", got)
	}
	if got := (Span{Filename: "a.alg", Line: 3, Column: 7}).String(); got != "a.alg:3:7" {
		t.Fatalf("expected a.alg:3:7, got %q", got)
	}
}

func TestSpanMerge(t *testing.T) {
	a := Span{Line: 1, Column: 1, Start: 0, End: 3}
	b := Span{Line: 2, Column: 4, Start: 10, End: 14}

	got := a.Merge(b)
	if got.Start != 0 || got.End != 14 || got.Line != 1 || got.Column != 1 {
		t.Fatalf("unexpected merge result %+v", got)
	}
	if got := (Span{}).Merge(b); got != b {
		t.Fatalf("merging into an invalid span should return the other span, got %+v", got)
	}
}
