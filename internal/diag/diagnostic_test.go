package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/lexer"
)

func TestFromLexerError(t *testing.T) {
	err := lexer.LexerError{
		Kind:    lexer.ErrIllegalRune,
		Message: `illegal character "@"`,
		Span: lexer.Span{
			Filename: "a.alg",
			Line:     1,
			Column:   3,
			Start:    2,
			End:      3,
		},
	}

	diagnostic := err.ToDiagnostic()

	if diagnostic.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, diagnostic.Stage)
	}
	if diagnostic.Code != diag.CodeLexerIllegalRune {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerIllegalRune, diagnostic.Code)
	}
	if diagnostic.Message != err.Message {
		t.Fatalf("expected message %q, got %q", err.Message, diagnostic.Message)
	}
	if diagnostic.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, diagnostic.Severity)
	}

	wantSpan := diag.Span{
		Filename: "a.alg",
		Line:     err.Span.Line,
		Column:   err.Span.Column,
		Start:    err.Span.Start,
		End:      err.Span.End,
	}
	if diagnostic.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, diagnostic.Span)
	}
}

func TestFormatterSimple(t *testing.T) {
	var out bytes.Buffer
	f := diag.NewFormatter(&out, false)

	f.Format(diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     diag.CodeUnknownFunction,
		Message:  "unknown function foo",
		Span:     diag.Span{Filename: "a.alg", Line: 2, Column: 5},
	})

	want := "error[UNKNOWN_FUNCTION]: unknown function foo\n  --> a.alg:2:5\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestFormatterSnippet(t *testing.T) {
	src := "type T : C .\nfun (f int) -> int :\n  (f x) -> (foo x) .\n"

	var out bytes.Buffer
	f := diag.NewFormatter(&out, true)
	f.AddSource("<repl>", src)

	span := diag.Span{Filename: "<repl>", Line: 3, Column: 13, Start: 45, End: 48}
	d := diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeUnknownFunction,
		Message:  "unknown function foo",
		Span:     span,
	}.WithPrimarySpan(span, "not declared").WithHelp("declare foo with `fun`")

	f.Format(d)

	got := out.String()
	for _, want := range []string{
		"error[UNKNOWN_FUNCTION]: unknown function foo",
		"  --> <repl>:3:13",
		" 3 |   (f x) -> (foo x) .",
		"            ^^^ not declared",
		"help: declare foo with `fun`",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFormatterFallsBackWithoutSource(t *testing.T) {
	var out bytes.Buffer
	f := diag.NewFormatter(&out, true)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Message:  "boom",
		Span:     diag.Span{Filename: "does-not-exist.alg", Line: 1, Column: 1},
	})

	if want := "error: boom\n  --> does-not-exist.alg:1:1\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestFormatterColor(t *testing.T) {
	var out bytes.Buffer
	f := diag.NewFormatter(&out, false)
	f.SetColor(true)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  "careful",
	})

	if want := "\x1b[1;33mwarning\x1b[0m: careful\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}
