package ast

import "github.com/algc-lang/algc/internal/lexer"

// Node represents any AST node with an associated source span. The span is the
// token that best identifies the node and is used only for diagnostics.
type Node interface {
	Span() lexer.Span
}

// Expression is the closed set of value expressions:
// *VarExpr, *ConstExpr, *FuncCallExpr and *ListCallExpr.
type Expression interface {
	Node
	exprNode()
}

// FuncParameter is the closed set of clause parameters: *VarParam and *ListParam.
type FuncParameter interface {
	Node
	paramNode()
}

// Program is the root of a parsed compilation unit.
type Program struct {
	Defs  []*TypeDef
	Funcs []*FunDef
	span  lexer.Span
}

// NewProgram constructs a program node.
func NewProgram(defs []*TypeDef, funcs []*FunDef, span lexer.Span) *Program {
	return &Program{
		Defs:  defs,
		Funcs: funcs,
		span:  span,
	}
}

// Span returns the span covering the whole program.
func (p *Program) Span() lexer.Span { return p.span }

// TypeNode is a type reference as written: the elementary type or a user type name.
// It is resolved by the checker, never at construction.
type TypeNode struct {
	Name string
	span lexer.Span
}

// NewTypeNode constructs a type reference.
func NewTypeNode(name string, span lexer.Span) *TypeNode {
	return &TypeNode{Name: name, span: span}
}

// Span returns the span of the type name.
func (t *TypeNode) Span() lexer.Span { return t.span }

// AlgType is one constructor alternative of a sum type.
type AlgType struct {
	Construct string
	Types     []*TypeNode
	span      lexer.Span
}

// NewAlgType constructs a constructor alternative.
func NewAlgType(construct string, types []*TypeNode, span lexer.Span) *AlgType {
	return &AlgType{
		Construct: construct,
		Types:     types,
		span:      span,
	}
}

// Span returns the span of the constructor name.
func (a *AlgType) Span() lexer.Span { return a.span }

// TypeDef declares a sum type with one or more constructors.
type TypeDef struct {
	Name         string
	Alternatives []*AlgType
	span         lexer.Span
}

// NewTypeDef constructs a type definition.
func NewTypeDef(name string, alternatives []*AlgType, span lexer.Span) *TypeDef {
	return &TypeDef{
		Name:         name,
		Alternatives: alternatives,
		span:         span,
	}
}

// Span returns the span of the declared type name.
func (d *TypeDef) Span() lexer.Span { return d.span }

// FunSignature is the declared type of a function.
type FunSignature struct {
	FuncName string
	ArgTypes []*TypeNode
	RetType  *TypeNode
	span     lexer.Span
}

// NewFunSignature constructs a signature.
func NewFunSignature(name string, argTypes []*TypeNode, retType *TypeNode, span lexer.Span) *FunSignature {
	return &FunSignature{
		FuncName: name,
		ArgTypes: argTypes,
		RetType:  retType,
		span:     span,
	}
}

// Span returns the span of the function name.
func (s *FunSignature) Span() lexer.Span { return s.span }

// FunDef is a signature plus one or more clauses.
type FunDef struct {
	Signature *FunSignature
	Clauses   []*Clause
}

// NewFunDef constructs a function definition.
func NewFunDef(signature *FunSignature, clauses []*Clause) *FunDef {
	return &FunDef{Signature: signature, Clauses: clauses}
}

// Span returns the signature span.
func (f *FunDef) Span() lexer.Span { return f.Signature.Span() }

// Clause is one equation: a pattern and the expression it evaluates to.
//
// VarTypes maps every pattern variable to its resolved type. It is written by
// the checker, replaced on each check, and never shared between clauses.
type Clause struct {
	Pattern  *FunctionPattern
	Expr     Expression
	VarTypes map[string]string
}

// NewClause constructs a clause.
func NewClause(pattern *FunctionPattern, expr Expression) *Clause {
	return &Clause{Pattern: pattern, Expr: expr}
}

// Span returns the pattern span.
func (c *Clause) Span() lexer.Span { return c.Pattern.Span() }

// FunctionPattern is the left-hand side of a clause: `(name p1 p2 ...)`.
type FunctionPattern struct {
	FuncName   string
	Parameters []FuncParameter
	span       lexer.Span
}

// NewFunctionPattern constructs a clause pattern.
func NewFunctionPattern(name string, params []FuncParameter, span lexer.Span) *FunctionPattern {
	return &FunctionPattern{
		FuncName:   name,
		Parameters: params,
		span:       span,
	}
}

// Span returns the span of the function name in the pattern.
func (p *FunctionPattern) Span() lexer.Span { return p.span }
