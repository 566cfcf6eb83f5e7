package ast

import "github.com/algc-lang/algc/internal/lexer"

// VarParam binds a pattern variable.
type VarParam struct {
	Name string
	span lexer.Span
}

// NewVarParam constructs a variable parameter.
func NewVarParam(name string, span lexer.Span) *VarParam {
	return &VarParam{Name: name, span: span}
}

// Span returns the variable span.
func (p *VarParam) Span() lexer.Span { return p.span }

func (*VarParam) paramNode() {}

// ListParam destructures a constructor application: `[Cons x xs]`.
type ListParam struct {
	Construct  string
	Parameters []FuncParameter
	span       lexer.Span
}

// NewListParam constructs a constructor parameter.
func NewListParam(construct string, params []FuncParameter, span lexer.Span) *ListParam {
	return &ListParam{
		Construct:  construct,
		Parameters: params,
		span:       span,
	}
}

// Span returns the constructor name span.
func (p *ListParam) Span() lexer.Span { return p.span }

func (*ListParam) paramNode() {}
