package types

import (
	"io"
	"log"

	"github.com/algc-lang/algc/internal/ast"
)

// Option configures a Checker.
type Option func(*Checker)

// WithStrictVariables makes a reference to a variable that the clause pattern
// does not bind an UnknownVariable error. By default such a variable has type
// Unknown and is accepted everywhere.
func WithStrictVariables(strict bool) Option {
	return func(c *Checker) {
		c.strict = strict
	}
}

// WithLogger traces the validation phases to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Checker validates programs. A Checker may be reused; each Check starts from
// fresh tables.
type Checker struct {
	strict bool
	logger *log.Logger
	tables *Tables
}

// NewChecker creates a new semantic checker.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks prog and returns the first semantic error found, or nil.
func Validate(prog *ast.Program, opts ...Option) error {
	return NewChecker(opts...).Check(prog)
}

// Tables returns the symbol tables of the last successful Check, or nil.
func (c *Checker) Tables() *Tables {
	return c.tables
}

// Check validates prog. The returned error is a *Error for a semantic error or
// an *InternalError for a malformed tree.
//
// The phases run in a fixed order and the first error aborts the run:
//  1. type names
//  2. constructor table
//  3. constructor field types
//  4. function signatures
//  5. clauses
//
// All names are registered before any reference to them is resolved, so types
// and functions may refer to each other regardless of declaration order.
func (c *Checker) Check(prog *ast.Program) error {
	c.tables = nil
	if prog == nil {
		return internalf("nil program")
	}

	tables, err := buildTypeNames(prog.Defs)
	if err != nil {
		return err
	}
	c.logger.Printf("types: %d type names", len(tables.Types))

	if tables, err = buildConstructorTable(tables, prog.Defs); err != nil {
		return err
	}
	c.logger.Printf("types: %d constructors", len(tables.Constructors))

	if tables, err = resolveTypeBodies(tables, prog.Defs); err != nil {
		return err
	}
	c.logger.Printf("types: constructor fields resolved")

	if tables, err = seedFunctionSignatures(tables, prog.Funcs); err != nil {
		return err
	}
	c.logger.Printf("types: %d functions", len(tables.Functions))

	if err := c.checkAllClauses(tables, prog.Funcs); err != nil {
		return err
	}
	c.logger.Printf("types: %d functions checked", len(prog.Funcs))

	c.tables = tables
	return nil
}

// buildTypeNames registers every declared type name. Field types are not
// looked at.
func buildTypeNames(defs []*ast.TypeDef) (*Tables, error) {
	t := newTables()
	for _, def := range defs {
		if def == nil {
			return nil, internalf("nil type definition")
		}
		// Unknown is reserved so that it never becomes a table entry.
		if _, exists := t.Types[def.Name]; exists || def.Name == Unknown {
			return nil, &Error{Kind: TypeRedefinition, Span: def.Span(), Name: def.Name}
		}
		t.Types[def.Name] = def.Name
	}
	return t, nil
}

// buildConstructorTable registers every constructor with its owning type and
// raw field types.
func buildConstructorTable(t *Tables, defs []*ast.TypeDef) (*Tables, error) {
	for _, def := range defs {
		for _, alt := range def.Alternatives {
			if alt == nil {
				return nil, internalf("nil alternative in type %s", def.Name)
			}
			if _, exists := t.Constructors[alt.Construct]; exists {
				return nil, &Error{Kind: ConstructorRedefinition, Span: alt.Span(), Name: alt.Construct}
			}
			t.Constructors[alt.Construct] = Constructor{Owner: def.Name, Fields: alt.Types}
		}
	}
	return t, nil
}

// resolveTypeBodies checks that every constructor field names a known type.
func resolveTypeBodies(t *Tables, defs []*ast.TypeDef) (*Tables, error) {
	for _, def := range defs {
		for _, alt := range def.Alternatives {
			if _, err := t.resolveAll(alt.Types); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// seedFunctionSignatures registers the built-in functions and then every
// declared signature with resolved types.
func seedFunctionSignatures(t *Tables, funcs []*ast.FunDef) (*Tables, error) {
	for _, name := range builtinFunctions {
		t.Functions[name] = Signature{Args: []string{Int, Int}, Ret: Int}
	}

	for _, fn := range funcs {
		if fn == nil || fn.Signature == nil {
			return nil, internalf("nil function definition")
		}
		sig := fn.Signature
		if _, exists := t.Functions[sig.FuncName]; exists {
			return nil, &Error{Kind: FunctionRedefinition, Span: sig.Span(), Name: sig.FuncName}
		}

		args, err := t.resolveAll(sig.ArgTypes)
		if err != nil {
			return nil, err
		}
		ret, err := t.resolve(sig.RetType)
		if err != nil {
			return nil, err
		}
		t.Functions[sig.FuncName] = Signature{Args: args, Ret: ret}
	}
	return t, nil
}

// checkAllClauses checks every clause of every function in declaration order.
func (c *Checker) checkAllClauses(t *Tables, funcs []*ast.FunDef) error {
	for _, fn := range funcs {
		sig := t.Functions[fn.Signature.FuncName]
		for _, clause := range fn.Clauses {
			if err := c.checkClause(t, fn.Signature.FuncName, sig, clause); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkClause binds the clause pattern against the signature and checks the
// body against the return type. clause.VarTypes is replaced by the bindings
// of this clause.
func (c *Checker) checkClause(t *Tables, name string, sig Signature, clause *ast.Clause) error {
	if clause == nil || clause.Pattern == nil {
		return internalf("nil clause in function %s", name)
	}
	pattern := clause.Pattern

	if pattern.FuncName != name {
		return &Error{
			Kind:     FunctionNameMismatch,
			Span:     pattern.Span(),
			Name:     pattern.FuncName,
			Expected: name,
			Actual:   pattern.FuncName,
		}
	}
	if len(pattern.Parameters) != len(sig.Args) {
		return countMismatch(pattern.Span(), pattern.FuncName, len(sig.Args), len(pattern.Parameters))
	}

	varTypes := make(map[string]string)
	for i, param := range pattern.Parameters {
		if err := bindPattern(t, param, sig.Args[i], varTypes); err != nil {
			return err
		}
	}
	clause.VarTypes = varTypes

	exprChecker := &exprChecker{tables: t, varTypes: varTypes, strict: c.strict}
	actual, err := exprChecker.typeOf(clause.Expr)
	if err != nil {
		return err
	}
	if actual != Unknown && actual != sig.Ret {
		return &Error{Kind: TypeMismatch, Span: clause.Expr.Span(), Expected: sig.Ret, Actual: actual}
	}
	return nil
}
