package lsp

import (
	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/lexer"
)

// DefinitionParams represents definition request parameters.
type DefinitionParams struct {
	TextDocumentPositionParams
}

// Location represents a location in a document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

func (s *Server) handleDefinition(msg *jsonrpcMessage) *jsonrpcMessage {
	var params DefinitionParams
	if resp := decodeParams(msg, &params); resp != nil {
		return resp
	}

	var location *Location
	if doc, ok := s.document(params.TextDocument.URI); ok && doc.Program != nil {
		location = findDefinition(doc, params.Position)
	}

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  location,
	}
}

func findDefinition(doc *Document, pos Position) *Location {
	offset := positionToOffset(doc.Content, pos)
	node, clause := nodeAt(doc.Program, offset)
	if node == nil {
		return nil
	}

	span, ok := declarationSpan(doc.index, node, clause)
	if !ok {
		return nil
	}
	// Definitions always live in the same document.
	return &Location{URI: doc.URI, Range: lexerRange(span)}
}

// declarationSpan returns the span of the declaration node refers to.
// Built-in names have none.
func declarationSpan(idx *index, node ast.Node, clause *ast.Clause) (lexer.Span, bool) {
	var target ast.Node
	switch n := node.(type) {
	case *ast.TypeDef:
		target = n
	case *ast.TypeNode:
		if def, ok := idx.types[n.Name]; ok {
			target = def
		}

	case *ast.AlgType:
		target = n
	case *ast.ListParam:
		if decl, ok := idx.constructors[n.Construct]; ok {
			target = decl.alt
		}
	case *ast.ListCallExpr:
		if decl, ok := idx.constructors[n.Construct]; ok {
			target = decl.alt
		}

	case *ast.FunSignature:
		target = n
	case *ast.FunctionPattern:
		if fn, ok := idx.functions[n.FuncName]; ok {
			target = fn.Signature
		}
	case *ast.FuncCallExpr:
		if fn, ok := idx.functions[n.Func]; ok {
			target = fn.Signature
		}

	case *ast.VarParam:
		target = n
	case *ast.VarExpr:
		if clause != nil {
			if param := binding(clause, n.Name); param != nil {
				target = param
			}
		}
	}

	if target == nil {
		return lexer.Span{}, false
	}
	return target.Span(), true
}
