package ast

import (
	"testing"

	"github.com/algc-lang/algc/internal/lexer"
)

func sampleProgram() *Program {
	var s lexer.Span
	list := NewTypeDef("List", []*AlgType{
		NewAlgType("Nil", nil, s),
		NewAlgType("Cons", []*TypeNode{NewTypeNode("int", s), NewTypeNode("List", s)}, s),
	}, s)

	sum := NewFunDef(
		NewFunSignature("sum", []*TypeNode{NewTypeNode("List", s)}, NewTypeNode("int", s), s),
		[]*Clause{
			NewClause(
				NewFunctionPattern("sum", []FuncParameter{NewListParam("Nil", nil, s)}, s),
				NewConstExpr(0, s),
			),
			NewClause(
				NewFunctionPattern("sum", []FuncParameter{
					NewListParam("Cons", []FuncParameter{NewVarParam("x", s), NewVarParam("xs", s)}, s),
				}, s),
				NewFuncCallExpr("add", []Expression{
					NewVarExpr("x", s),
					NewFuncCallExpr("sum", []Expression{NewVarExpr("xs", s)}, s),
				}, s),
			),
		},
	)

	return NewProgram([]*TypeDef{list}, []*FunDef{sum}, s)
}

func TestWalkVisitsEveryNode(t *testing.T) {
	counts := map[string]int{}
	Walk(sampleProgram(), func(n Node) bool {
		switch n.(type) {
		case *TypeNode:
			counts["type"]++
		case *VarParam:
			counts["var"]++
		case *ListParam:
			counts["list"]++
		case *FuncCallExpr:
			counts["call"]++
		case *Clause:
			counts["clause"]++
		}
		return true
	})

	want := map[string]int{"type": 4, "var": 2, "list": 2, "call": 2, "clause": 2}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("expected %d %s nodes, got %d", v, k, counts[k])
		}
	}
}

func TestWalkStopsBranch(t *testing.T) {
	visited := 0
	Walk(sampleProgram(), func(n Node) bool {
		visited++
		_, isDef := n.(*FunDef)
		return !isDef
	})

	// Program, TypeDef, two AlgTypes, two TypeNodes, FunDef
	if visited != 7 {
		t.Fatalf("expected 7 visited nodes, got %d", visited)
	}
}

func TestFormat(t *testing.T) {
	want := "type List : Nil | Cons int List .\n" +
		"fun (sum List) -> int :\n" +
		"  (sum [Nil]) -> 0 |\n" +
		"  (sum [Cons x xs]) -> (add x (sum xs)) .\n"

	if got := Format(sampleProgram()); got != want {
		t.Fatalf("unexpected format output:\n%s\nwant:\n%s", got, want)
	}
}
