package lsp

import (
	"strings"

	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/lexer"
	"github.com/algc-lang/algc/internal/types"
)

// HoverParams represents hover request parameters.
type HoverParams struct {
	TextDocumentPositionParams
}

// Hover represents hover information.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *Server) handleHover(msg *jsonrpcMessage) *jsonrpcMessage {
	var params HoverParams
	if resp := decodeParams(msg, &params); resp != nil {
		return resp
	}

	var hover *Hover
	if doc, ok := s.document(params.TextDocument.URI); ok && doc.Program != nil {
		hover = getHover(doc, params.Position)
	}

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  hover,
	}
}

func getHover(doc *Document, pos Position) *Hover {
	offset := positionToOffset(doc.Content, pos)
	node, clause := nodeAt(doc.Program, offset)
	if node == nil {
		return nil
	}

	text := describeNode(doc.index, node, clause)
	if text == "" {
		return nil
	}

	r := lexerRange(node.Span())
	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: "```alg\n" + text + "\n```",
		},
		Range: &r,
	}
}

// describeNode returns the declaration shown when hovering over node.
func describeNode(idx *index, node ast.Node, clause *ast.Clause) string {
	switch n := node.(type) {
	case *ast.TypeDef:
		return ast.Format(n)
	case *ast.TypeNode:
		return describeType(idx, n.Name)

	case *ast.AlgType:
		return describeConstructor(idx, n.Construct)
	case *ast.ListParam:
		return describeConstructor(idx, n.Construct)
	case *ast.ListCallExpr:
		return describeConstructor(idx, n.Construct)

	case *ast.FunSignature:
		return describeFunction(idx, n.FuncName)
	case *ast.FunctionPattern:
		return describeFunction(idx, n.FuncName)
	case *ast.FuncCallExpr:
		return describeFunction(idx, n.Func)

	case *ast.VarParam:
		return describeVariable(clause, n.Name)
	case *ast.VarExpr:
		return describeVariable(clause, n.Name)
	case *ast.ConstExpr:
		return types.Int
	}
	return ""
}

func describeType(idx *index, name string) string {
	if types.IsBuiltinType(name) {
		return "type " + name + " (built-in " + types.Int + ")"
	}
	if def, ok := idx.types[name]; ok {
		return ast.Format(def)
	}
	return ""
}

func describeConstructor(idx *index, name string) string {
	decl, ok := idx.constructors[name]
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" :")
	for _, field := range decl.alt.Types {
		b.WriteByte(' ')
		b.WriteString(field.Name)
	}
	if len(decl.alt.Types) > 0 {
		b.WriteString(" ->")
	}
	b.WriteByte(' ')
	b.WriteString(decl.owner.Name)
	return b.String()
}

func describeFunction(idx *index, name string) string {
	if types.IsBuiltinFunction(name) {
		return "fun (" + name + " int int) -> int"
	}
	if fn, ok := idx.functions[name]; ok {
		return "fun " + ast.Format(fn.Signature)
	}
	return ""
}

func describeVariable(clause *ast.Clause, name string) string {
	if clause == nil {
		return ""
	}
	typ, ok := clause.VarTypes[name]
	if !ok {
		typ = types.Unknown
	}
	return name + " : " + typ
}

// lexerRange converts a single-line token span to a 0-based LSP range.
func lexerRange(span lexer.Span) Range {
	start := Position{Line: span.Line - 1, Character: span.Column - 1}
	end := start
	end.Character += span.End - span.Start
	return Range{Start: start, End: end}
}

