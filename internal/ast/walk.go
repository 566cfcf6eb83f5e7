package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, def := range n.Defs {
			Walk(def, fn)
		}
		for _, fun := range n.Funcs {
			Walk(fun, fn)
		}

	case *TypeDef:
		for _, alt := range n.Alternatives {
			Walk(alt, fn)
		}

	case *AlgType:
		for _, typ := range n.Types {
			Walk(typ, fn)
		}

	case *FunDef:
		Walk(n.Signature, fn)
		for _, clause := range n.Clauses {
			Walk(clause, fn)
		}

	case *FunSignature:
		for _, typ := range n.ArgTypes {
			Walk(typ, fn)
		}
		if n.RetType != nil {
			Walk(n.RetType, fn)
		}

	case *Clause:
		Walk(n.Pattern, fn)
		if n.Expr != nil {
			Walk(n.Expr, fn)
		}

	case *FunctionPattern:
		for _, param := range n.Parameters {
			Walk(param, fn)
		}

	case *ListParam:
		for _, param := range n.Parameters {
			Walk(param, fn)
		}

	case *FuncCallExpr:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *ListCallExpr:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *TypeNode, *VarParam, *VarExpr, *ConstExpr:
		// leaves
	}
}
