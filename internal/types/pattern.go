package types

import (
	"strconv"

	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/lexer"
)

// bindPattern binds the variables of param, which must match a value of type
// expected, into varTypes.
func bindPattern(t *Tables, param ast.FuncParameter, expected string, varTypes map[string]string) error {
	if isNilNode(param) {
		return internalf("nil pattern parameter")
	}

	switch p := param.(type) {
	case *ast.VarParam:
		if _, bound := varTypes[p.Name]; bound {
			return &Error{Kind: RepeatedVariable, Span: p.Span(), Name: p.Name}
		}
		varTypes[p.Name] = expected
		return nil

	case *ast.ListParam:
		ctor, ok := t.Constructors[p.Construct]
		if !ok {
			return &Error{Kind: UnknownConstructor, Span: p.Span(), Name: p.Construct}
		}
		if ctor.Owner != expected {
			return &Error{Kind: TypeMismatch, Span: p.Span(), Name: p.Construct, Expected: expected, Actual: ctor.Owner}
		}
		if ctor.Arity() != len(p.Parameters) {
			return countMismatch(p.Span(), p.Construct, ctor.Arity(), len(p.Parameters))
		}

		fields, err := t.resolveAll(ctor.Fields)
		if err != nil {
			return err
		}
		for i, sub := range p.Parameters {
			if err := bindPattern(t, sub, fields[i], varTypes); err != nil {
				return err
			}
		}
		return nil
	}
	return internalf("unexpected pattern parameter %T", param)
}

func countMismatch(span lexer.Span, name string, expected, actual int) *Error {
	return &Error{
		Kind:     ArgumentCountMismatch,
		Span:     span,
		Name:     name,
		Expected: strconv.Itoa(expected),
		Actual:   strconv.Itoa(actual),
	}
}

// isNilNode reports whether n is nil or a nil pointer to a pattern or
// expression node.
func isNilNode(n ast.Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *ast.VarParam:
		return v == nil
	case *ast.ListParam:
		return v == nil
	case *ast.VarExpr:
		return v == nil
	case *ast.ConstExpr:
		return v == nil
	case *ast.FuncCallExpr:
		return v == nil
	case *ast.ListCallExpr:
		return v == nil
	}
	return false
}
