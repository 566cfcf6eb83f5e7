package ast

import "github.com/algc-lang/algc/internal/lexer"

// VarExpr references a variable.
type VarExpr struct {
	Name string
	span lexer.Span
}

// NewVarExpr constructs a variable reference.
func NewVarExpr(name string, span lexer.Span) *VarExpr {
	return &VarExpr{Name: name, span: span}
}

// Span returns the variable span.
func (e *VarExpr) Span() lexer.Span { return e.span }

func (*VarExpr) exprNode() {}

// ConstExpr is an integer literal.
type ConstExpr struct {
	Value int64
	span  lexer.Span
}

// NewConstExpr constructs an integer literal.
func NewConstExpr(value int64, span lexer.Span) *ConstExpr {
	return &ConstExpr{Value: value, span: span}
}

// Span returns the literal span.
func (e *ConstExpr) Span() lexer.Span { return e.span }

func (*ConstExpr) exprNode() {}

// FuncCallExpr calls a user function or one of the built-ins add and mul.
type FuncCallExpr struct {
	Func string
	Args []Expression
	span lexer.Span
}

// NewFuncCallExpr constructs a call.
func NewFuncCallExpr(fn string, args []Expression, span lexer.Span) *FuncCallExpr {
	return &FuncCallExpr{Func: fn, Args: args, span: span}
}

// Span returns the span of the called name.
func (e *FuncCallExpr) Span() lexer.Span { return e.span }

func (*FuncCallExpr) exprNode() {}

// ListCallExpr applies a constructor: `[Cons 1 xs]`.
type ListCallExpr struct {
	Construct string
	Args      []Expression
	span      lexer.Span
}

// NewListCallExpr constructs a constructor application.
func NewListCallExpr(construct string, args []Expression, span lexer.Span) *ListCallExpr {
	return &ListCallExpr{Construct: construct, Args: args, span: span}
}

// Span returns the constructor name span.
func (e *ListCallExpr) Span() lexer.Span { return e.span }

func (*ListCallExpr) exprNode() {}
