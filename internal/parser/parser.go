package parser

import (
	"errors"

	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/lexer"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Parser is a recursive-descent parser for Alg. Every production it recognizes
// is reduced through the matching ast action, which receives the meaningful
// child values, one span per production symbol and the span of the whole match.
//
// Invariants:
//   - Lookahead: curTok is the token under examination and peekTok the one after
//     it. Both are only mutated via nextToken.
//   - Errors are fail-fast: the first syntax error stops the parse by unwinding
//     to ParseProgram through a bailout panic, which never escapes the package.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	// prevEnd is the span of the last consumed token; result spans end there.
	prevEnd lexer.Span

	err      error
	filename string
}

// bailout is raised by fail and recovered by ParseProgram.
type bailout struct{}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:       lexer.New(input),
		filename: cfg.filename,
	}
	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	// Read two tokens so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()

	return p
}

// ParseFile parses src into a program.
//
// The returned error is an ErrorList for lexical and syntax errors, or an
// *ast.ActionError when a grammar action could not build its node.
func ParseFile(src string, opts ...Option) (*ast.Program, error) {
	return New(src, opts...).ParseProgram()
}

// ParseProgram parses the whole input. Program → Defs Funcs
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog, err = nil, p.err
		}
	}()

	start := p.curTok.Span

	defsStart := p.curTok.Span
	var defs []*ast.TypeDef
	for p.curTokenIs(lexer.TYPE) {
		defs = append(defs, p.parseTypeDef())
	}
	defsSpan := p.spanFrom(defsStart)

	funcsStart := p.curTok.Span
	var funcs []*ast.FunDef
	for p.curTokenIs(lexer.FUN) {
		funcs = append(funcs, p.parseFunDef())
	}
	funcsSpan := p.spanFrom(funcsStart)

	if !p.curTokenIs(lexer.EOF) {
		if len(funcs) > 0 {
			p.failExpected(describe("`fun`", "end of input"))
		}
		p.failExpected(describe("`type`", "`fun`", "end of input"))
	}

	node := p.reduce(ast.ProgramAction,
		[]any{defs, funcs},
		[]lexer.Span{defsSpan, funcsSpan},
		start,
	)

	// Lexical errors inside comments never reach the token stream.
	if len(p.lx.Errors) > 0 {
		return nil, lexerErrors(p.lx.Errors)
	}
	return node.(*ast.Program), nil
}

// reduce invokes a grammar action and aborts the parse if it fails.
func (p *Parser) reduce(action ast.Action, values []any, spans []lexer.Span, start lexer.Span) any {
	node, err := action(values, spans, p.spanFrom(start))
	if err != nil {
		var actionErr *ast.ActionError
		if !errors.As(err, &actionErr) {
			actionErr = &ast.ActionError{Node: "unknown", Reason: err.Error()}
		}
		p.err = actionErr
		panic(bailout{})
	}
	return node
}

// spanFrom returns the span running from start to the end of the last consumed
// token. For an empty match it is the zero-width span at start.
func (p *Parser) spanFrom(start lexer.Span) lexer.Span {
	if p.prevEnd.End <= start.Start {
		return lexer.Span{
			Filename: start.Filename,
			Line:     start.Line,
			Column:   start.Column,
			Start:    start.Start,
			End:      start.Start,
		}
	}
	return start.Merge(p.prevEnd)
}
