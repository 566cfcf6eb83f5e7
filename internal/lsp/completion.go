package lsp

import (
	"golang.org/x/exp/slices"

	"github.com/algc-lang/algc/internal/ast"
)

// CompletionParams represents completion request parameters.
type CompletionParams struct {
	TextDocumentPositionParams
}

// CompletionItem represents a single completion suggestion.
type CompletionItem struct {
	Label  string `json:"label"`
	Kind   int    `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// Completion item kinds from the protocol.
const (
	completionKindFunction    = 3
	completionKindConstructor = 4
	completionKindVariable    = 6
	completionKindClass       = 7
	completionKindKeyword     = 14
)

var keywords = []string{"type", "fun", "add", "mul", "int"}

func (s *Server) handleCompletion(msg *jsonrpcMessage) *jsonrpcMessage {
	var params CompletionParams
	if resp := decodeParams(msg, &params); resp != nil {
		return resp
	}

	items := []CompletionItem{}
	if doc, ok := s.document(params.TextDocument.URI); ok {
		items = getCompletions(doc, params.Position)
	}

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  items,
	}
}

// getCompletions suggests keywords, declared names and, inside a clause, the
// variables bound by its pattern.
func getCompletions(doc *Document, pos Position) []CompletionItem {
	items := make([]CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		items = append(items, CompletionItem{Label: kw, Kind: completionKindKeyword})
	}
	if doc.index == nil {
		return items
	}

	for _, name := range sortedKeys(doc.index.types) {
		items = append(items, CompletionItem{
			Label:  name,
			Kind:   completionKindClass,
			Detail: ast.Format(doc.index.types[name]),
		})
	}
	for _, name := range sortedKeys(doc.index.constructors) {
		items = append(items, CompletionItem{
			Label:  name,
			Kind:   completionKindConstructor,
			Detail: describeConstructor(doc.index, name),
		})
	}
	for _, name := range sortedKeys(doc.index.functions) {
		items = append(items, CompletionItem{
			Label:  name,
			Kind:   completionKindFunction,
			Detail: describeFunction(doc.index, name),
		})
	}

	if clause := clauseAt(doc.Program, positionToOffset(doc.Content, pos)); clause != nil {
		for _, name := range sortedKeys(clause.VarTypes) {
			items = append(items, CompletionItem{
				Label:  name,
				Kind:   completionKindVariable,
				Detail: clause.VarTypes[name],
			})
		}
	}
	return items
}

// clauseAt returns the last clause starting at or before offset within the
// function definition that contains offset.
func clauseAt(prog *ast.Program, offset int) *ast.Clause {
	var found *ast.Clause
	for _, fn := range prog.Funcs {
		if fn.Span().Start > offset {
			break
		}
		found = nil
		for _, clause := range fn.Clauses {
			if clause.Span().Start > offset {
				break
			}
			found = clause
		}
	}
	return found
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
