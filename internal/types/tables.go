package types

import (
	"golang.org/x/exp/slices"

	"github.com/algc-lang/algc/internal/ast"
)

// Unknown is the type of an expression whose type cannot be determined, such
// as an unbound variable. It is accepted wherever a type is expected and is
// never stored in a table.
const Unknown = "unknown"

// Int is the resolved name of the elementary integer type.
const Int = "int"

var (
	builtinTypes     = []string{"int", "Int"}
	builtinFunctions = []string{"add", "mul"}
)

// IsBuiltinType reports whether name is a predeclared type name.
func IsBuiltinType(name string) bool {
	return slices.Contains(builtinTypes, name)
}

// IsBuiltinFunction reports whether name is a predeclared function.
func IsBuiltinFunction(name string) bool {
	return slices.Contains(builtinFunctions, name)
}

// Constructor is a constructor table entry. Fields are kept unresolved; they
// are resolved against the type table on use.
type Constructor struct {
	Owner  string
	Fields []*ast.TypeNode
}

// Arity returns the number of fields of the constructor.
func (c Constructor) Arity() int {
	return len(c.Fields)
}

// Signature is a function table entry with resolved types.
type Signature struct {
	Args []string
	Ret  string
}

// Tables holds the symbol tables of one program.
type Tables struct {
	// Types maps a type name to its resolved name.
	Types        map[string]string
	Constructors map[string]Constructor
	Functions    map[string]Signature
}

func newTables() *Tables {
	t := &Tables{
		Types:        make(map[string]string, len(builtinTypes)),
		Constructors: make(map[string]Constructor),
		Functions:    make(map[string]Signature, len(builtinFunctions)),
	}
	for _, name := range builtinTypes {
		t.Types[name] = Int
	}
	return t
}

// resolve returns the resolved name of a type reference.
func (t *Tables) resolve(node *ast.TypeNode) (string, error) {
	if node == nil {
		return "", internalf("nil type node")
	}
	resolved, ok := t.Types[node.Name]
	if !ok {
		return "", &Error{Kind: UnknownType, Span: node.Span(), Name: node.Name}
	}
	return resolved, nil
}

// resolveAll resolves a list of type references in order.
func (t *Tables) resolveAll(nodes []*ast.TypeNode) ([]string, error) {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		resolved, err := t.resolve(node)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}
