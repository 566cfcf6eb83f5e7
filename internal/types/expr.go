package types

import (
	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/lexer"
)

// exprChecker computes expression types within one clause.
type exprChecker struct {
	tables   *Tables
	varTypes map[string]string
	strict   bool
}

// typeOf returns the resolved type of expr, or Unknown.
func (c *exprChecker) typeOf(expr ast.Expression) (string, error) {
	if isNilNode(expr) {
		return "", internalf("nil expression")
	}

	switch e := expr.(type) {
	case *ast.VarExpr:
		if typ, ok := c.varTypes[e.Name]; ok {
			return typ, nil
		}
		if c.strict {
			return "", &Error{Kind: UnknownVariable, Span: e.Span(), Name: e.Name}
		}
		return Unknown, nil

	case *ast.ConstExpr:
		return Int, nil

	case *ast.FuncCallExpr:
		sig, ok := c.tables.Functions[e.Func]
		if !ok {
			return "", &Error{Kind: UnknownFunction, Span: e.Span(), Name: e.Func}
		}
		if err := c.checkArgs(e.Span(), e.Func, sig.Args, e.Args); err != nil {
			return "", err
		}
		return sig.Ret, nil

	case *ast.ListCallExpr:
		ctor, ok := c.tables.Constructors[e.Construct]
		if !ok {
			return "", &Error{Kind: UnknownConstructor, Span: e.Span(), Name: e.Construct}
		}
		fields, err := c.tables.resolveAll(ctor.Fields)
		if err != nil {
			return "", err
		}
		if err := c.checkArgs(e.Span(), e.Construct, fields, e.Args); err != nil {
			return "", err
		}
		return ctor.Owner, nil
	}
	return "", internalf("unexpected expression %T", expr)
}

// checkArgs checks args left to right against the expected types. An argument
// of type Unknown matches anything.
func (c *exprChecker) checkArgs(span lexer.Span, name string, expected []string, args []ast.Expression) error {
	if len(expected) != len(args) {
		return countMismatch(span, name, len(expected), len(args))
	}
	for i, arg := range args {
		actual, err := c.typeOf(arg)
		if err != nil {
			return err
		}
		if actual != Unknown && actual != expected[i] {
			return &Error{Kind: TypeMismatch, Span: arg.Span(), Expected: expected[i], Actual: actual}
		}
	}
	return nil
}
