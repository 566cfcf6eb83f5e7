package ast

import (
	"fmt"

	"github.com/algc-lang/algc/internal/lexer"
)

// Action builds a node when the parser reduces the matching production.
//
// values holds the semantically meaningful children in order (punctuation and
// keywords are skipped). spans holds one span per symbol of the production,
// punctuation included, so the index of the identifying token is fixed per
// production. result covers the whole match and is used when the identifying
// span is absent.
type Action func(values []any, spans []lexer.Span, result lexer.Span) (any, error)

// ActionError reports a production whose action received values it cannot
// build a node from. It signals miswired grammar actions, not a user error.
type ActionError struct {
	Node   string
	Index  int
	Reason string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("ast: %s action: value %d: %s", e.Node, e.Index, e.Reason)
}

// value extracts values[i] as T.
func value[T any](node string, values []any, i int) (T, error) {
	var zero T
	if i >= len(values) {
		return zero, &ActionError{
			Node:   node,
			Index:  i,
			Reason: fmt.Sprintf("missing (got %d values)", len(values)),
		}
	}
	v, ok := values[i].(T)
	if !ok {
		return zero, &ActionError{
			Node:   node,
			Index:  i,
			Reason: fmt.Sprintf("expected %T, got %T", zero, values[i]),
		}
	}
	return v, nil
}

// spanAt returns spans[i], or result if the production supplied fewer spans.
func spanAt(spans []lexer.Span, i int, result lexer.Span) lexer.Span {
	if i < len(spans) {
		return spans[i]
	}
	return result
}

// TypeNodeAction: Type → IDENT | int
func TypeNodeAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	name, err := value[string]("TypeNode", values, 0)
	if err != nil {
		return nil, err
	}
	return NewTypeNode(name, spanAt(spans, 0, result)), nil
}

// AlgTypeAction: AlgType → IDENT Types
func AlgTypeAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	construct, err := value[string]("AlgType", values, 0)
	if err != nil {
		return nil, err
	}
	types, err := value[[]*TypeNode]("AlgType", values, 1)
	if err != nil {
		return nil, err
	}
	return NewAlgType(construct, types, spanAt(spans, 0, result)), nil
}

// TypeDefAction: Def → type IDENT : Alternatives .
func TypeDefAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	name, err := value[string]("TypeDef", values, 0)
	if err != nil {
		return nil, err
	}
	alts, err := value[[]*AlgType]("TypeDef", values, 1)
	if err != nil {
		return nil, err
	}
	return NewTypeDef(name, alts, spanAt(spans, 1, result)), nil
}

// FunSignatureAction: FunSignature → ( IDENT Types ) -> Type
func FunSignatureAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	name, err := value[string]("FunSignature", values, 0)
	if err != nil {
		return nil, err
	}
	args, err := value[[]*TypeNode]("FunSignature", values, 1)
	if err != nil {
		return nil, err
	}
	ret, err := value[*TypeNode]("FunSignature", values, 2)
	if err != nil {
		return nil, err
	}
	return NewFunSignature(name, args, ret, spanAt(spans, 1, result)), nil
}

// FunDefAction: FunDef → fun FunSignature : Clauses .
func FunDefAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	sig, err := value[*FunSignature]("FunDef", values, 0)
	if err != nil {
		return nil, err
	}
	clauses, err := value[[]*Clause]("FunDef", values, 1)
	if err != nil {
		return nil, err
	}
	return NewFunDef(sig, clauses), nil
}

// ClauseAction: Clause → FunctionPattern -> Expression
func ClauseAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	pattern, err := value[*FunctionPattern]("Clause", values, 0)
	if err != nil {
		return nil, err
	}
	expr, err := value[Expression]("Clause", values, 1)
	if err != nil {
		return nil, err
	}
	return NewClause(pattern, expr), nil
}

// FunctionPatternAction: FunctionPattern → ( IDENT FuncParameters )
func FunctionPatternAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	name, err := value[string]("FunctionPattern", values, 0)
	if err != nil {
		return nil, err
	}
	params, err := value[[]FuncParameter]("FunctionPattern", values, 1)
	if err != nil {
		return nil, err
	}
	return NewFunctionPattern(name, params, spanAt(spans, 1, result)), nil
}

// VarParamAction: FuncParameter → IDENT
func VarParamAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	name, err := value[string]("VarParam", values, 0)
	if err != nil {
		return nil, err
	}
	return NewVarParam(name, spanAt(spans, 0, result)), nil
}

// ListParamAction: ListParam → [ IDENT FuncParameters ]
func ListParamAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	construct, err := value[string]("ListParam", values, 0)
	if err != nil {
		return nil, err
	}
	params, err := value[[]FuncParameter]("ListParam", values, 1)
	if err != nil {
		return nil, err
	}
	return NewListParam(construct, params, spanAt(spans, 1, result)), nil
}

// VarExprAction: Expression → IDENT
func VarExprAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	name, err := value[string]("VarExpr", values, 0)
	if err != nil {
		return nil, err
	}
	return NewVarExpr(name, spanAt(spans, 0, result)), nil
}

// ConstExprAction: Const → INT_CONST
func ConstExprAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	v, err := value[int64]("ConstExpr", values, 0)
	if err != nil {
		return nil, err
	}
	return NewConstExpr(v, spanAt(spans, 0, result)), nil
}

// FuncCallExprAction: FuncCall → ( Func Expressions )
func FuncCallExprAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	fn, err := value[string]("FuncCallExpr", values, 0)
	if err != nil {
		return nil, err
	}
	args, err := value[[]Expression]("FuncCallExpr", values, 1)
	if err != nil {
		return nil, err
	}
	return NewFuncCallExpr(fn, args, spanAt(spans, 1, result)), nil
}

// ListCallExprAction: ListCall → [ IDENT Expressions ]
func ListCallExprAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	construct, err := value[string]("ListCallExpr", values, 0)
	if err != nil {
		return nil, err
	}
	args, err := value[[]Expression]("ListCallExpr", values, 1)
	if err != nil {
		return nil, err
	}
	return NewListCallExpr(construct, args, spanAt(spans, 1, result)), nil
}

// ProgramAction: Program → Defs Funcs
func ProgramAction(values []any, spans []lexer.Span, result lexer.Span) (any, error) {
	defs, err := value[[]*TypeDef]("Program", values, 0)
	if err != nil {
		return nil, err
	}
	funcs, err := value[[]*FunDef]("Program", values, 1)
	if err != nil {
		return nil, err
	}
	return NewProgram(defs, funcs, result), nil
}
