package parser

import "pir/internal/ast"

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorExpecting(tokenName(tt), message)
	illegal := Token{Type: ILLEGAL, Position: p.peek().Position}
	p.advance()
	return illegal
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAtCurrent(message string) {
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Position: p.peek().Position,
	})
}

func (p *Parser) errorExpecting(expected, message string) {
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Expected: expected,
		Position: p.peek().Position,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

// makeEndPos spans the raw source extent of the token. Token.Length is
// used rather than the lexeme length because STRING lexemes are decoded.
func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + tok.Length,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + tok.Length,
	}
}

// synchronize skips forward to the next plausible item boundary after a
// parse error so later items still get checked.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		switch p.peek().Type {
		case AT, SLOT, RENDER, STRING, RIGHT_BRACE:
			return
		}
		p.advance()
	}
}

func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

func (p *Parser) consumeIdent(message string) (ast.Ident, bool) {
	tok := p.consume(IDENTIFIER, message)
	if tok.Type == ILLEGAL {
		return ast.Ident{Value: "error"}, false
	}
	return p.makeIdent(tok), true
}

func (p *Parser) makeString(tok Token) ast.StringLit {
	return ast.StringLit{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

func tokenName(tt TokenType) string {
	switch tt {
	case IDENTIFIER:
		return "identifier"
	case NUMBER:
		return "number"
	case STRING:
		return "string"
	case MODULE:
		return "'module'"
	case RENDER:
		return "'render'"
	case SLOT:
		return "'slot'"
	case SWITCH:
		return "'switch'"
	case CASE:
		return "'case'"
	case ELSE:
		return "'else'"
	case LIT:
		return "'lit'"
	case SEC:
		return "'sec'"
	case IN:
		return "'in'"
	case COMMA:
		return "','"
	case DOT:
		return "'.'"
	case COLON:
		return "':'"
	case EQUAL:
		return "'='"
	case AT:
		return "'@'"
	case LEFT_PAREN:
		return "'('"
	case RIGHT_PAREN:
		return "')'"
	case LEFT_BRACE:
		return "'{'"
	case RIGHT_BRACE:
		return "'}'"
	case EOF:
		return "end of file"
	default:
		return "token"
	}
}
