package parser

import (
	"fmt"
	"strconv"

	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/lexer"
)

// parseExpression parses: Expression → IDENT | Const | FuncCall | ListCall
func (p *Parser) parseExpression() ast.Expression {
	switch p.curTok.Type {
	case lexer.IDENT:
		start := p.curTok.Span
		name := p.curTok
		p.nextToken()
		node := p.reduce(ast.VarExprAction,
			[]any{name.Raw},
			[]lexer.Span{name.Span},
			start,
		)
		return node.(*ast.VarExpr)

	case lexer.INT:
		return p.parseConst()

	case lexer.LPAREN:
		return p.parseFuncCall()

	case lexer.LBRACKET:
		return p.parseListCall()
	}

	p.failExpected("expression")
	return nil
}

// parseConst parses: Const → INT_CONST
func (p *Parser) parseConst() *ast.ConstExpr {
	start := p.curTok.Span
	tok := p.curTok

	value, err := strconv.ParseInt(tok.Raw, 10, 64)
	if err != nil {
		p.fail(ParseError{
			Message: fmt.Sprintf("integer literal %s is out of range", tok.Raw),
			Span:    tok.Span,
			Stage:   diag.StageParser,
			Code:    diag.CodeParseIntegerRange,
			Found:   tok.Type,
		})
	}
	p.nextToken()

	node := p.reduce(ast.ConstExprAction,
		[]any{value},
		[]lexer.Span{tok.Span},
		start,
	)
	return node.(*ast.ConstExpr)
}

// parseFuncCall parses: FuncCall → ( Func Expressions ), Func → add | mul | IDENT
func (p *Parser) parseFuncCall() *ast.FuncCallExpr {
	start := p.curTok.Span

	lparen := p.expect(lexer.LPAREN, "`(`")

	var fn string
	switch p.curTok.Type {
	case lexer.ADD:
		fn = "add"
	case lexer.MUL:
		fn = "mul"
	case lexer.IDENT:
		fn = p.curTok.Raw
	default:
		p.failExpected(describe("`add`", "`mul`", "function name"))
	}
	fnTok := p.curTok
	p.nextToken()

	args, argsSpan := p.parseExpressions()
	rparen := p.expect(lexer.RPAREN, describe("expression", "`)`"))

	node := p.reduce(ast.FuncCallExprAction,
		[]any{fn, args},
		[]lexer.Span{lparen.Span, fnTok.Span, argsSpan, rparen.Span},
		start,
	)
	return node.(*ast.FuncCallExpr)
}

// parseListCall parses: ListCall → [ IDENT Expressions ]
func (p *Parser) parseListCall() *ast.ListCallExpr {
	start := p.curTok.Span

	lbracket := p.expect(lexer.LBRACKET, "`[`")
	construct := p.expect(lexer.IDENT, "constructor name")
	args, argsSpan := p.parseExpressions()
	rbracket := p.expect(lexer.RBRACKET, describe("expression", "`]`"))

	node := p.reduce(ast.ListCallExprAction,
		[]any{construct.Raw, args},
		[]lexer.Span{lbracket.Span, construct.Span, argsSpan, rbracket.Span},
		start,
	)
	return node.(*ast.ListCallExpr)
}

// parseExpressions parses: Expressions → ε | Expressions Expression
func (p *Parser) parseExpressions() ([]ast.Expression, lexer.Span) {
	start := p.curTok.Span
	args := []ast.Expression{}
	for p.curTokenIn(exprStart) {
		args = append(args, p.parseExpression())
	}
	return args, p.spanFrom(start)
}
