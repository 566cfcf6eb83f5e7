package parser

import (
	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/lexer"
)

// parseFunctionPattern parses: FunctionPattern → ( IDENT FuncParameters )
func (p *Parser) parseFunctionPattern() *ast.FunctionPattern {
	start := p.curTok.Span

	lparen := p.expect(lexer.LPAREN, "`(`")
	name := p.expect(lexer.IDENT, "function name")
	params, paramsSpan := p.parseFuncParameters()
	rparen := p.expect(lexer.RPAREN, describe("parameter", "`)`"))

	node := p.reduce(ast.FunctionPatternAction,
		[]any{name.Raw, params},
		[]lexer.Span{lparen.Span, name.Span, paramsSpan, rparen.Span},
		start,
	)
	return node.(*ast.FunctionPattern)
}

// parseFuncParameters parses: FuncParameters → ε | FuncParameters FuncParameter
func (p *Parser) parseFuncParameters() ([]ast.FuncParameter, lexer.Span) {
	start := p.curTok.Span
	params := []ast.FuncParameter{}
	for p.curTokenIn(paramStart) {
		params = append(params, p.parseFuncParameter())
	}
	return params, p.spanFrom(start)
}

// parseFuncParameter parses: FuncParameter → IDENT | ListParam
func (p *Parser) parseFuncParameter() ast.FuncParameter {
	if p.curTokenIs(lexer.LBRACKET) {
		return p.parseListParam()
	}

	start := p.curTok.Span
	name := p.expect(lexer.IDENT, "parameter")

	node := p.reduce(ast.VarParamAction,
		[]any{name.Raw},
		[]lexer.Span{name.Span},
		start,
	)
	return node.(*ast.VarParam)
}

// parseListParam parses: ListParam → [ IDENT FuncParameters ]
func (p *Parser) parseListParam() *ast.ListParam {
	start := p.curTok.Span

	lbracket := p.expect(lexer.LBRACKET, "`[`")
	construct := p.expect(lexer.IDENT, "constructor name")
	params, paramsSpan := p.parseFuncParameters()
	rbracket := p.expect(lexer.RBRACKET, describe("parameter", "`]`"))

	node := p.reduce(ast.ListParamAction,
		[]any{construct.Raw, params},
		[]lexer.Span{lbracket.Span, construct.Span, paramsSpan, rbracket.Span},
		start,
	)
	return node.(*ast.ListParam)
}
