package lsp

import (
	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/parser"
	"github.com/algc-lang/algc/internal/types"
)

// Document represents an open document.
type Document struct {
	URI     string
	Content string
	Version int

	// Program is nil when the document does not parse.
	Program *ast.Program
	// Err is the parse or semantic error of the current content, if any.
	Err error

	index *index
}

// analyze parses and validates the current content.
func (d *Document) analyze(strict bool) {
	d.Program, d.index = nil, nil

	prog, err := parser.ParseFile(d.Content, parser.WithFilename(uriToPath(d.URI)))
	if err != nil {
		d.Err = err
		return
	}

	// Hover and definition work from the tree even when validation fails;
	// clauses checked before the failure keep their variable types.
	d.Err = types.Validate(prog, types.WithStrictVariables(strict))
	d.Program = prog
	d.index = newIndex(prog)
}

// constructorDecl is a constructor with its owning type.
type constructorDecl struct {
	alt   *ast.AlgType
	owner *ast.TypeDef
}

// index maps declared names to their declarations. The first declaration of
// a name wins, as in the checker.
type index struct {
	types        map[string]*ast.TypeDef
	constructors map[string]constructorDecl
	functions    map[string]*ast.FunDef
}

func newIndex(prog *ast.Program) *index {
	idx := &index{
		types:        make(map[string]*ast.TypeDef),
		constructors: make(map[string]constructorDecl),
		functions:    make(map[string]*ast.FunDef),
	}
	for _, def := range prog.Defs {
		if _, ok := idx.types[def.Name]; !ok {
			idx.types[def.Name] = def
		}
		for _, alt := range def.Alternatives {
			if _, ok := idx.constructors[alt.Construct]; !ok {
				idx.constructors[alt.Construct] = constructorDecl{alt: alt, owner: def}
			}
		}
	}
	for _, fn := range prog.Funcs {
		if _, ok := idx.functions[fn.Signature.FuncName]; !ok {
			idx.functions[fn.Signature.FuncName] = fn
		}
	}
	return idx
}

// nodeAt returns the innermost node whose identifying token contains offset,
// together with the clause enclosing it, if any.
func nodeAt(prog *ast.Program, offset int) (ast.Node, *ast.Clause) {
	var (
		found  ast.Node
		clause *ast.Clause
		inside *ast.Clause
	)
	ast.Walk(prog, func(n ast.Node) bool {
		if c, ok := n.(*ast.Clause); ok {
			inside = c
		}
		if _, ok := n.(*ast.FunDef); ok {
			inside = nil
		}
		span := n.Span()
		if offset >= span.Start && offset < span.End {
			found = n
			clause = inside
		}
		return true
	})
	return found, clause
}

// binding returns the pattern variable of clause named name.
func binding(clause *ast.Clause, name string) *ast.VarParam {
	var param *ast.VarParam
	ast.Walk(clause.Pattern, func(n ast.Node) bool {
		if v, ok := n.(*ast.VarParam); ok && v.Name == name && param == nil {
			param = v
		}
		return param == nil
	})
	return param
}

// positionToOffset converts an LSP position to a rune offset in content.
func positionToOffset(content string, pos Position) int {
	line, col, offset := 0, 0, 0
	for _, r := range content {
		if line == pos.Line && col == pos.Character {
			return offset
		}
		if r == '\n' {
			if line == pos.Line {
				return offset
			}
			line++
			col = 0
		} else {
			col++
		}
		offset++
	}
	return offset
}
