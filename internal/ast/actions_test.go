package ast

import (
	"errors"
	"strings"
	"testing"

	"github.com/algc-lang/algc/internal/lexer"
)

func sp(col int) lexer.Span {
	return lexer.Span{Line: 1, Column: col, Start: col - 1, End: col}
}

func TestActionsPickIdentifyingSpan(t *testing.T) {
	result := lexer.Span{Line: 9, Column: 9}
	spans := []lexer.Span{sp(1), sp(2), sp(3), sp(4), sp(5)}

	tests := []struct {
		name   string
		action Action
		values []any
		want   lexer.Span
	}{
		{"TypeNode", TypeNodeAction, []any{"Bool"}, sp(1)},
		{"AlgType", AlgTypeAction, []any{"Cons", []*TypeNode{}}, sp(1)},
		{"TypeDef", TypeDefAction, []any{"List", []*AlgType{}}, sp(2)},
		{"FunSignature", FunSignatureAction, []any{"f", []*TypeNode{}, NewTypeNode("int", sp(4))}, sp(2)},
		{"FunctionPattern", FunctionPatternAction, []any{"f", []FuncParameter{}}, sp(2)},
		{"VarParam", VarParamAction, []any{"x"}, sp(1)},
		{"ListParam", ListParamAction, []any{"Cons", []FuncParameter{}}, sp(2)},
		{"VarExpr", VarExprAction, []any{"x"}, sp(1)},
		{"ConstExpr", ConstExprAction, []any{int64(7)}, sp(1)},
		{"FuncCallExpr", FuncCallExprAction, []any{"add", []Expression{}}, sp(2)},
		{"ListCallExpr", ListCallExprAction, []any{"Nil", []Expression{}}, sp(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.action(tt.values, spans, result)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			node, ok := got.(Node)
			if !ok {
				t.Fatalf("expected a Node, got %T", got)
			}
			if node.Span() != tt.want {
				t.Fatalf("expected span %+v, got %+v", tt.want, node.Span())
			}
		})
	}
}

func TestActionsFallBackToResultSpan(t *testing.T) {
	result := lexer.Span{Line: 4, Column: 2, Start: 30, End: 41}

	got, err := TypeDefAction([]any{"T", []*AlgType{}}, []lexer.Span{sp(1)}, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(*TypeDef).Span() != result {
		t.Fatalf("expected fallback to result span, got %+v", got.(*TypeDef).Span())
	}

	got, err = VarExprAction([]any{"x"}, nil, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(*VarExpr).Span() != result {
		t.Fatalf("expected fallback to result span, got %+v", got.(*VarExpr).Span())
	}
}

func TestActionsRejectMissingValues(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		values []any
		index  int
	}{
		{"TypeDef", TypeDefAction, []any{"T"}, 1},
		{"FunSignature", FunSignatureAction, []any{"f", []*TypeNode{}}, 2},
		{"Clause", ClauseAction, nil, 0},
		{"Program", ProgramAction, []any{[]*TypeDef{}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.action(tt.values, nil, lexer.Span{})
			var actionErr *ActionError
			if !errors.As(err, &actionErr) {
				t.Fatalf("expected *ActionError, got %v", err)
			}
			if actionErr.Node != tt.name || actionErr.Index != tt.index {
				t.Fatalf("expected %s value %d, got %s value %d", tt.name, tt.index, actionErr.Node, actionErr.Index)
			}
			if !strings.Contains(actionErr.Reason, "missing") {
				t.Fatalf("expected a missing-value reason, got %q", actionErr.Reason)
			}
		})
	}
}

func TestActionsRejectWrongValueType(t *testing.T) {
	_, err := ConstExprAction([]any{"12"}, nil, lexer.Span{})
	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("expected *ActionError, got %v", err)
	}
	if !strings.Contains(actionErr.Error(), "expected int64, got string") {
		t.Fatalf("unexpected message %q", actionErr.Error())
	}
}

func TestClauseAndFunDefSpans(t *testing.T) {
	pattern := NewFunctionPattern("f", nil, sp(3))
	clause := NewClause(pattern, NewConstExpr(1, sp(9)))
	if clause.Span() != sp(3) {
		t.Fatalf("expected clause span to be the pattern span, got %+v", clause.Span())
	}

	sig := NewFunSignature("f", nil, NewTypeNode("int", sp(7)), sp(6))
	def := NewFunDef(sig, []*Clause{clause})
	if def.Span() != sp(6) {
		t.Fatalf("expected fundef span to be the signature span, got %+v", def.Span())
	}
}
