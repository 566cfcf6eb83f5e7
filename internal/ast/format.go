package ast

import (
	"strconv"
	"strings"
)

// Format renders node back to Alg source. Type and function definitions are
// printed one per line; the output parses to an equivalent tree.
func Format(node Node) string {
	var b strings.Builder
	format(&b, node)
	return b.String()
}

func format(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Program:
		for _, def := range n.Defs {
			format(b, def)
			b.WriteByte('\n')
		}
		for _, fun := range n.Funcs {
			format(b, fun)
			b.WriteByte('\n')
		}

	case *TypeDef:
		b.WriteString("type ")
		b.WriteString(n.Name)
		b.WriteString(" : ")
		for i, alt := range n.Alternatives {
			if i > 0 {
				b.WriteString(" | ")
			}
			format(b, alt)
		}
		b.WriteString(" .")

	case *AlgType:
		b.WriteString(n.Construct)
		for _, typ := range n.Types {
			b.WriteByte(' ')
			format(b, typ)
		}

	case *TypeNode:
		b.WriteString(n.Name)

	case *FunDef:
		b.WriteString("fun ")
		format(b, n.Signature)
		b.WriteString(" :")
		for i, clause := range n.Clauses {
			if i > 0 {
				b.WriteString(" |")
			}
			b.WriteString("\n  ")
			format(b, clause)
		}
		b.WriteString(" .")

	case *FunSignature:
		b.WriteByte('(')
		b.WriteString(n.FuncName)
		for _, typ := range n.ArgTypes {
			b.WriteByte(' ')
			format(b, typ)
		}
		b.WriteString(") -> ")
		format(b, n.RetType)

	case *Clause:
		format(b, n.Pattern)
		b.WriteString(" -> ")
		format(b, n.Expr)

	case *FunctionPattern:
		b.WriteByte('(')
		b.WriteString(n.FuncName)
		for _, param := range n.Parameters {
			b.WriteByte(' ')
			format(b, param)
		}
		b.WriteByte(')')

	case *VarParam:
		b.WriteString(n.Name)

	case *ListParam:
		b.WriteByte('[')
		b.WriteString(n.Construct)
		for _, param := range n.Parameters {
			b.WriteByte(' ')
			format(b, param)
		}
		b.WriteByte(']')

	case *VarExpr:
		b.WriteString(n.Name)

	case *ConstExpr:
		b.WriteString(strconv.FormatInt(n.Value, 10))

	case *FuncCallExpr:
		b.WriteByte('(')
		b.WriteString(n.Func)
		for _, arg := range n.Args {
			b.WriteByte(' ')
			format(b, arg)
		}
		b.WriteByte(')')

	case *ListCallExpr:
		b.WriteByte('[')
		b.WriteString(n.Construct)
		for _, arg := range n.Args {
			b.WriteByte(' ')
			format(b, arg)
		}
		b.WriteByte(']')
	}
}
