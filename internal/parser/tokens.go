package parser

import (
	"golang.org/x/exp/slices"

	"github.com/algc-lang/algc/internal/lexer"
)

// FIRST sets of the list productions.
var (
	typeStart  = []lexer.TokenType{lexer.IDENT, lexer.INT_TYPE}
	paramStart = []lexer.TokenType{lexer.IDENT, lexer.LBRACKET}
	exprStart  = []lexer.TokenType{lexer.IDENT, lexer.INT, lexer.LPAREN, lexer.LBRACKET}
)

// nextToken advances the lookahead window by one token.
func (p *Parser) nextToken() {
	if p.curTok.Type != "" {
		p.prevEnd = p.curTok.Span
	}
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

func (p *Parser) curTokenIs(tt lexer.TokenType) bool {
	return p.curTok.Type == tt
}

func (p *Parser) curTokenIn(set []lexer.TokenType) bool {
	return slices.Contains(set, p.curTok.Type)
}

// expect consumes the current token if it has type tt and returns it; otherwise
// the parse fails.
func (p *Parser) expect(tt lexer.TokenType, what string) lexer.Token {
	if !p.curTokenIs(tt) {
		p.failExpected(what)
	}
	tok := p.curTok
	p.nextToken()
	return tok
}
