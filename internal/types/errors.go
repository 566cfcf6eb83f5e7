package types

import (
	"fmt"

	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/lexer"
)

// ErrorKind classifies a semantic error.
type ErrorKind int

const (
	TypeRedefinition ErrorKind = iota + 1
	ConstructorRedefinition
	FunctionRedefinition
	FunctionNameMismatch
	ArgumentCountMismatch
	RepeatedVariable
	UnknownVariable
	UnknownType
	UnknownConstructor
	UnknownFunction
	TypeMismatch
)

var kindNames = map[ErrorKind]string{
	TypeRedefinition:        "TypeRedefinition",
	ConstructorRedefinition: "ConstructorRedefinition",
	FunctionRedefinition:    "FunctionRedefinition",
	FunctionNameMismatch:    "FunctionNameMismatch",
	ArgumentCountMismatch:   "ArgumentCountMismatch",
	RepeatedVariable:        "RepeatedVariable",
	UnknownVariable:         "UnknownVariable",
	UnknownType:             "UnknownType",
	UnknownConstructor:      "UnknownConstructor",
	UnknownFunction:         "UnknownFunction",
	TypeMismatch:            "TypeMismatch",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Code returns the stable diagnostic code of the kind.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case TypeRedefinition:
		return diag.CodeTypeRedefinition
	case ConstructorRedefinition:
		return diag.CodeConstructorRedefinition
	case FunctionRedefinition:
		return diag.CodeFunctionRedefinition
	case FunctionNameMismatch:
		return diag.CodeFunctionNameMismatch
	case ArgumentCountMismatch:
		return diag.CodeArgumentCountMismatch
	case RepeatedVariable:
		return diag.CodeRepeatedVariable
	case UnknownVariable:
		return diag.CodeUnknownVariable
	case UnknownType:
		return diag.CodeUnknownType
	case UnknownConstructor:
		return diag.CodeUnknownConstructor
	case UnknownFunction:
		return diag.CodeUnknownFunction
	case TypeMismatch:
		return diag.CodeTypeMismatch
	default:
		return diag.Code("TYPE_UNKNOWN_ERROR")
	}
}

// Error is a positioned semantic error. Which payload fields are set depends
// on the kind:
//
//   - redefinitions, unknown names, RepeatedVariable: Name
//   - FunctionNameMismatch: Expected is the signature name, Actual the pattern name
//   - ArgumentCountMismatch: Expected and Actual are decimal counts
//   - TypeMismatch: Expected and Actual are resolved type names
type Error struct {
	Kind     ErrorKind
	Span     lexer.Span
	Name     string
	Expected string
	Actual   string
}

// Message returns the English description of the error without its position.
func (e *Error) Message() string {
	switch e.Kind {
	case TypeRedefinition:
		return "redefinition of type " + e.Name
	case ConstructorRedefinition:
		return "redefinition of constructor " + e.Name
	case FunctionRedefinition:
		return "redefinition of function " + e.Name
	case FunctionNameMismatch:
		return fmt.Sprintf("function name %s in pattern does not match signature name %s", e.Actual, e.Expected)
	case ArgumentCountMismatch:
		return fmt.Sprintf("argument count (%s) does not match signature (%s)", e.Actual, e.Expected)
	case RepeatedVariable:
		return fmt.Sprintf("repeated variable %s in pattern", e.Name)
	case UnknownVariable:
		return "unknown variable " + e.Name
	case UnknownType:
		return "unknown type " + e.Name
	case UnknownConstructor:
		return "unknown constructor " + e.Name
	case UnknownFunction:
		return "unknown function " + e.Name
	case TypeMismatch:
		return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return e.Kind.String()
}

func (e *Error) Error() string {
	return e.Span.String() + ": " + e.Message()
}

// toDiagSpan converts a lexer.Span to a diag.Span.
func toDiagSpan(span lexer.Span) diag.Span {
	return diag.Span{
		Filename: span.Filename,
		Line:     span.Line,
		Column:   span.Column,
		Start:    span.Start,
		End:      span.End,
	}
}

// ToDiagnostic converts the error into a shared diagnostic using the English
// message. Callers presenting another language replace Message.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	span := toDiagSpan(e.Span)
	d := diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     e.Kind.Code(),
		Message:  e.Message(),
		Span:     span,
	}

	if span.IsValid() {
		d = d.WithPrimarySpan(span, e.label())
	}

	switch e.Kind {
	case FunctionRedefinition:
		if IsBuiltinFunction(e.Name) {
			d = d.WithNote(e.Name + " is a built-in function")
		}
	case TypeRedefinition:
		if IsBuiltinType(e.Name) {
			d = d.WithNote(e.Name + " is a built-in type")
		} else if e.Name == Unknown {
			d = d.WithNote(Unknown + " is reserved for expressions of undetermined type")
		}
	case UnknownVariable:
		d = d.WithHelp("variables in a clause body must be bound by its pattern")
	}
	return d
}

func (e *Error) label() string {
	switch e.Kind {
	case TypeMismatch:
		return "expected " + e.Expected
	case ArgumentCountMismatch:
		return "expected " + e.Expected + " arguments"
	case FunctionNameMismatch:
		return "expected " + e.Expected
	}
	return ""
}

// InternalError reports a malformed AST, such as a nil node. It is never a
// user diagnostic.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "types: malformed AST: " + e.Reason
}

func internalf(format string, args ...any) error {
	return &InternalError{Reason: fmt.Sprintf(format, args...)}
}
