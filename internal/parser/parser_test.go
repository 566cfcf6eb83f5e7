package parser_test

import (
	"errors"
	"testing"

	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/parser"
)

func parseFile(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, err := parser.ParseFile(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if prog == nil {
		t.Fatalf("program is nil")
	}
	return prog
}

func parseErrors(t *testing.T, src string, opts ...parser.Option) parser.ErrorList {
	t.Helper()

	prog, err := parser.ParseFile(src, opts...)
	if err == nil {
		t.Fatalf("expected parse error, got program %q", ast.Format(prog))
	}
	if prog != nil {
		t.Fatalf("expected nil program on error")
	}
	var list parser.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected parser.ErrorList, got %T", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected at least one error")
	}
	return list
}

const boolSrc = `type Bool : True | False .
fun (eq int int) -> int : (eq a b) -> (add a b) .
`

func TestParseTypeDef(t *testing.T) {
	prog := parseFile(t, `type List : Nil | Cons int List .`)

	if len(prog.Defs) != 1 {
		t.Fatalf("expected 1 type definition, got %d", len(prog.Defs))
	}
	def := prog.Defs[0]
	if def.Name != "List" {
		t.Fatalf("expected type name %q, got %q", "List", def.Name)
	}
	if len(def.Alternatives) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(def.Alternatives))
	}

	cons := def.Alternatives[1]
	if cons.Construct != "Cons" {
		t.Fatalf("expected constructor %q, got %q", "Cons", cons.Construct)
	}
	if len(cons.Types) != 2 || cons.Types[0].Name != "int" || cons.Types[1].Name != "List" {
		t.Fatalf("unexpected Cons field types: %+v", cons.Types)
	}
	if empty := def.Alternatives[0]; len(empty.Types) != 0 {
		t.Fatalf("expected Nil to have no fields, got %d", len(empty.Types))
	}
}

func TestParseFunDef(t *testing.T) {
	prog := parseFile(t, boolSrc)

	if len(prog.Funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Funcs))
	}
	fn := prog.Funcs[0]

	sig := fn.Signature
	if sig.FuncName != "eq" {
		t.Fatalf("expected function name %q, got %q", "eq", sig.FuncName)
	}
	if len(sig.ArgTypes) != 2 || sig.RetType.Name != "int" {
		t.Fatalf("unexpected signature %q", ast.Format(sig))
	}

	if len(fn.Clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(fn.Clauses))
	}
	clause := fn.Clauses[0]
	if clause.Pattern.FuncName != "eq" || len(clause.Pattern.Parameters) != 2 {
		t.Fatalf("unexpected pattern %q", ast.Format(clause.Pattern))
	}

	call, ok := clause.Expr.(*ast.FuncCallExpr)
	if !ok {
		t.Fatalf("expected *ast.FuncCallExpr, got %T", clause.Expr)
	}
	if call.Func != "add" {
		t.Fatalf("expected call to %q, got %q", "add", call.Func)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}
	if clause.VarTypes != nil {
		t.Fatalf("expected VarTypes to be empty before checking")
	}
}

func TestParseBuiltinCallNames(t *testing.T) {
	prog := parseFile(t, `fun (f int) -> int : (f x) -> (mul (add x 1) (g x)) .`)

	outer := prog.Funcs[0].Clauses[0].Expr.(*ast.FuncCallExpr)
	if outer.Func != "mul" {
		t.Fatalf("expected %q, got %q", "mul", outer.Func)
	}
	if inner := outer.Args[0].(*ast.FuncCallExpr); inner.Func != "add" {
		t.Fatalf("expected %q, got %q", "add", inner.Func)
	}
	if user := outer.Args[1].(*ast.FuncCallExpr); user.Func != "g" {
		t.Fatalf("expected %q, got %q", "g", user.Func)
	}
}

func TestParseNestedPatterns(t *testing.T) {
	src := `type List : Nil | Cons int List .
fun (len List) -> int :
  (len [Nil]) -> 0 |
  (len [Cons x [Cons y rest]]) -> (add 2 (len rest)) .
`
	prog := parseFile(t, src)

	clauses := prog.Funcs[0].Clauses
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}

	nilParam, ok := clauses[0].Pattern.Parameters[0].(*ast.ListParam)
	if !ok {
		t.Fatalf("expected *ast.ListParam, got %T", clauses[0].Pattern.Parameters[0])
	}
	if nilParam.Construct != "Nil" || len(nilParam.Parameters) != 0 {
		t.Fatalf("unexpected parameter %q", ast.Format(nilParam))
	}

	outer := clauses[1].Pattern.Parameters[0].(*ast.ListParam)
	if len(outer.Parameters) != 2 {
		t.Fatalf("expected 2 nested parameters, got %d", len(outer.Parameters))
	}
	if _, ok := outer.Parameters[0].(*ast.VarParam); !ok {
		t.Fatalf("expected *ast.VarParam, got %T", outer.Parameters[0])
	}
	inner, ok := outer.Parameters[1].(*ast.ListParam)
	if !ok || inner.Construct != "Cons" || len(inner.Parameters) != 2 {
		t.Fatalf("unexpected nested parameter %q", ast.Format(outer.Parameters[1]))
	}

	if c, ok := clauses[0].Expr.(*ast.ConstExpr); !ok || c.Value != 0 {
		t.Fatalf("expected constant 0, got %q", ast.Format(clauses[0].Expr))
	}
}

func TestParseListCallExpr(t *testing.T) {
	src := `type List : Nil | Cons int List .
fun (one) -> List : (one) -> [Cons 1 [Nil]] .
`
	prog := parseFile(t, src)

	sig := prog.Funcs[0].Signature
	if len(sig.ArgTypes) != 0 {
		t.Fatalf("expected no argument types, got %d", len(sig.ArgTypes))
	}

	list, ok := prog.Funcs[0].Clauses[0].Expr.(*ast.ListCallExpr)
	if !ok {
		t.Fatalf("expected *ast.ListCallExpr, got %T", prog.Funcs[0].Clauses[0].Expr)
	}
	if list.Construct != "Cons" || len(list.Args) != 2 {
		t.Fatalf("unexpected expression %q", ast.Format(list))
	}
	if tail := list.Args[1].(*ast.ListCallExpr); tail.Construct != "Nil" || len(tail.Args) != 0 {
		t.Fatalf("unexpected tail %q", ast.Format(tail))
	}
}

func TestParseEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "   \n", "<< nothing here >>"} {
		prog := parseFile(t, src)
		if len(prog.Defs) != 0 || len(prog.Funcs) != 0 {
			t.Fatalf("expected empty program for %q", src)
		}
	}
}

func TestParseSpans(t *testing.T) {
	prog := parseFile(t, boolSrc)

	tests := []struct {
		name string
		node ast.Node
		line int
		col  int
	}{
		{"type name", prog.Defs[0], 1, 6},
		{"first constructor", prog.Defs[0].Alternatives[0], 1, 13},
		{"second constructor", prog.Defs[0].Alternatives[1], 1, 20},
		{"signature name", prog.Funcs[0].Signature, 2, 6},
		{"fun def", prog.Funcs[0], 2, 6},
		{"first arg type", prog.Funcs[0].Signature.ArgTypes[0], 2, 9},
		{"pattern name", prog.Funcs[0].Clauses[0].Pattern, 2, 28},
		{"clause", prog.Funcs[0].Clauses[0], 2, 28},
		{"pattern var", prog.Funcs[0].Clauses[0].Pattern.Parameters[1], 2, 33},
		{"call name", prog.Funcs[0].Clauses[0].Expr, 2, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := tt.node.Span()
			if span.Line != tt.line || span.Column != tt.col {
				t.Fatalf("expected %d:%d, got %d:%d", tt.line, tt.col, span.Line, span.Column)
			}
		})
	}
}

func TestParseWithFilename(t *testing.T) {
	prog, err := parser.ParseFile(boolSrc, parser.WithFilename("bool.alg"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if got := prog.Defs[0].Span().String(); got != "bool.alg:1:6" {
		t.Fatalf("expected %q, got %q", "bool.alg:1:6", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	src := `type List : Nil | Cons int List .
type Pair : Pair List List .
fun (len List) -> int :
  (len [Nil]) -> 0 |
  (len [Cons x rest]) -> (add 1 (len rest)) .
fun (pair) -> Pair :
  (pair) -> [Pair [Nil] [Cons 7 [Nil]]] .
`
	first := ast.Format(parseFile(t, src))
	second := ast.Format(parseFile(t, first))
	if first != second {
		t.Fatalf("formatting is not stable:\n%s\n---\n%s", first, second)
	}
	if first != src {
		t.Fatalf("expected canonical source to format unchanged:\n%s\n---\n%s", src, first)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		line    int
		col     int
	}{
		{
			name:    "missing colon",
			src:     `type Bool True .`,
			message: "expected `:`, found `True`",
			line:    1, col: 11,
		},
		{
			name:    "missing dot",
			src:     `type Bool : True | False`,
			message: "expected `|` or `.`, found end of input",
			line:    1, col: 25,
		},
		{
			name:    "keyword as constructor",
			src:     `type Bool : fun .`,
			message: "expected constructor name, found `fun`",
			line:    1, col: 13,
		},
		{
			name:    "missing arrow in signature",
			src:     `fun (f int) int : (f x) -> x .`,
			message: "expected `->`, found `int`",
			line:    1, col: 13,
		},
		{
			name:    "bad call head",
			src:     `fun (f int) -> int : (f x) -> (1 x) .`,
			message: "expected `add`, `mul` or function name, found `1`",
			line:    1, col: 32,
		},
		{
			name:    "type after functions",
			src:     "fun (f) -> int : (f) -> 1 .\ntype A : B .",
			message: "expected `fun` or end of input, found `type`",
			line:    2, col: 1,
		},
		{
			name:    "stray token",
			src:     `A`,
			message: "expected `type`, `fun` or end of input, found `A`",
			line:    1, col: 1,
		},
		{
			name:    "missing expression",
			src:     `fun (f) -> int : (f) -> .`,
			message: "expected expression, found `.`",
			line:    1, col: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseErrors(t, tt.src)
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
			}
			err := errs[0]
			if err.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, err.Message)
			}
			if err.Span.Line != tt.line || err.Span.Column != tt.col {
				t.Fatalf("expected error at %d:%d, got %d:%d", tt.line, tt.col, err.Span.Line, err.Span.Column)
			}
			if err.Stage != diag.StageParser || err.Code != diag.CodeParseUnexpectedToken {
				t.Fatalf("expected parser stage with %s, got %s %s", diag.CodeParseUnexpectedToken, err.Stage, err.Code)
			}
		})
	}
}

func TestParseErrorString(t *testing.T) {
	errs := parseErrors(t, `type Bool True .`, parser.WithFilename("x.alg"))
	want := "x.alg:1:11: expected `:`, found `True`"
	if got := errs.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	errs = parseErrors(t, `type Bool True .`)
	want = "(1, 11): expected `:`, found `True`"
	if got := errs.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseIncomplete(t *testing.T) {
	errs := parseErrors(t, `fun (f int) -> int : (f x) -> x`)
	if !errs.Incomplete() {
		t.Fatalf("expected truncated input to be incomplete, got %v", errs)
	}

	errs = parseErrors(t, `fun (f int) int`)
	if errs.Incomplete() {
		t.Fatalf("expected misplaced token not to be incomplete")
	}
}

func TestParseIntegerRange(t *testing.T) {
	errs := parseErrors(t, `fun (f) -> int : (f) -> 99999999999999999999 .`)
	if errs[0].Code != diag.CodeParseIntegerRange {
		t.Fatalf("expected %s, got %s", diag.CodeParseIntegerRange, errs[0].Code)
	}

	prog := parseFile(t, `fun (f) -> int : (f) -> 9223372036854775807 .`)
	if c := prog.Funcs[0].Clauses[0].Expr.(*ast.ConstExpr); c.Value != 9223372036854775807 {
		t.Fatalf("expected max int64, got %d", c.Value)
	}
}

func TestParseLexerErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"illegal rune", `type A : B @ .`, diag.CodeLexerIllegalRune},
		{"unterminated comment", "type A : B . << oops", diag.CodeLexerUnterminatedComment},
		{"comment broken by newline", "type A : B . << oops\n>>", diag.CodeLexerUnterminatedComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseErrors(t, tt.src)
			if errs[0].Stage != diag.StageLexer {
				t.Fatalf("expected lexer stage, got %s", errs[0].Stage)
			}
			if errs[0].Code != tt.code {
				t.Fatalf("expected %s, got %s", tt.code, errs[0].Code)
			}
			if errs.Incomplete() {
				t.Fatalf("lexer errors must not be reported as incomplete")
			}
		})
	}
}

func TestParseErrorToDiagnostic(t *testing.T) {
	errs := parseErrors(t, `type Bool True .`, parser.WithFilename("x.alg"))
	d := errs[0].ToDiagnostic()

	if d.Stage != diag.StageParser || d.Severity != diag.SeverityError {
		t.Fatalf("unexpected diagnostic header %s %s", d.Stage, d.Severity)
	}
	if d.Span.Filename != "x.alg" || d.Span.Line != 1 || d.Span.Column != 11 {
		t.Fatalf("unexpected diagnostic span %+v", d.Span)
	}
	if len(d.LabeledSpans) != 1 {
		t.Fatalf("expected a primary labeled span, got %d", len(d.LabeledSpans))
	}
}
