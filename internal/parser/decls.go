package parser

import (
	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/lexer"
)

// parseTypeDef parses: Def → type IDENT : Alternatives .
func (p *Parser) parseTypeDef() *ast.TypeDef {
	start := p.curTok.Span

	kw := p.expect(lexer.TYPE, "`type`")
	name := p.expect(lexer.IDENT, "type name")
	colon := p.expect(lexer.COLON, "`:`")

	altsStart := p.curTok.Span
	alts := []*ast.AlgType{p.parseAlgType()}
	for p.curTokenIs(lexer.PIPE) {
		p.nextToken()
		alts = append(alts, p.parseAlgType())
	}
	altsSpan := p.spanFrom(altsStart)

	dot := p.expect(lexer.DOT, describe("`|`", "`.`"))

	node := p.reduce(ast.TypeDefAction,
		[]any{name.Raw, alts},
		[]lexer.Span{kw.Span, name.Span, colon.Span, altsSpan, dot.Span},
		start,
	)
	return node.(*ast.TypeDef)
}

// parseAlgType parses: AlgType → IDENT Types
func (p *Parser) parseAlgType() *ast.AlgType {
	start := p.curTok.Span

	construct := p.expect(lexer.IDENT, "constructor name")
	types, typesSpan := p.parseTypes()

	node := p.reduce(ast.AlgTypeAction,
		[]any{construct.Raw, types},
		[]lexer.Span{construct.Span, typesSpan},
		start,
	)
	return node.(*ast.AlgType)
}

// parseTypes parses: Types → ε | Types Type
func (p *Parser) parseTypes() ([]*ast.TypeNode, lexer.Span) {
	start := p.curTok.Span
	types := []*ast.TypeNode{}
	for p.curTokenIn(typeStart) {
		types = append(types, p.parseType())
	}
	return types, p.spanFrom(start)
}

// parseType parses: Type → int | IDENT
func (p *Parser) parseType() *ast.TypeNode {
	start := p.curTok.Span
	if !p.curTokenIn(typeStart) {
		p.failExpected(describe("`int`", "type name"))
	}
	tok := p.curTok
	p.nextToken()

	node := p.reduce(ast.TypeNodeAction,
		[]any{tok.Raw},
		[]lexer.Span{tok.Span},
		start,
	)
	return node.(*ast.TypeNode)
}

// parseFunDef parses: FunDef → fun FunSignature : Clauses .
func (p *Parser) parseFunDef() *ast.FunDef {
	start := p.curTok.Span

	kw := p.expect(lexer.FUN, "`fun`")

	sigStart := p.curTok.Span
	sig := p.parseFunSignature()
	sigSpan := p.spanFrom(sigStart)

	colon := p.expect(lexer.COLON, "`:`")

	clausesStart := p.curTok.Span
	clauses := []*ast.Clause{p.parseClause()}
	for p.curTokenIs(lexer.PIPE) {
		p.nextToken()
		clauses = append(clauses, p.parseClause())
	}
	clausesSpan := p.spanFrom(clausesStart)

	dot := p.expect(lexer.DOT, describe("`|`", "`.`"))

	node := p.reduce(ast.FunDefAction,
		[]any{sig, clauses},
		[]lexer.Span{kw.Span, sigSpan, colon.Span, clausesSpan, dot.Span},
		start,
	)
	return node.(*ast.FunDef)
}

// parseFunSignature parses: FunSignature → ( IDENT Types ) -> Type
func (p *Parser) parseFunSignature() *ast.FunSignature {
	start := p.curTok.Span

	lparen := p.expect(lexer.LPAREN, "`(`")
	name := p.expect(lexer.IDENT, "function name")
	args, argsSpan := p.parseTypes()
	rparen := p.expect(lexer.RPAREN, describe("type", "`)`"))
	arrow := p.expect(lexer.ARROW, "`->`")

	retStart := p.curTok.Span
	ret := p.parseType()
	retSpan := p.spanFrom(retStart)

	node := p.reduce(ast.FunSignatureAction,
		[]any{name.Raw, args, ret},
		[]lexer.Span{lparen.Span, name.Span, argsSpan, rparen.Span, arrow.Span, retSpan},
		start,
	)
	return node.(*ast.FunSignature)
}

// parseClause parses: Clause → FunctionPattern -> Expression
func (p *Parser) parseClause() *ast.Clause {
	start := p.curTok.Span

	pattern := p.parseFunctionPattern()
	patternSpan := p.spanFrom(start)

	arrow := p.expect(lexer.ARROW, "`->`")

	exprStart := p.curTok.Span
	expr := p.parseExpression()
	exprSpan := p.spanFrom(exprStart)

	node := p.reduce(ast.ClauseAction,
		[]any{pattern, expr},
		[]lexer.Span{patternSpan, arrow.Span, exprSpan},
		start,
	)
	return node.(*ast.Clause)
}
