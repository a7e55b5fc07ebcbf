package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pir/internal/ast"
)

// SupportedMajor is the PIR-TXT major version this parser understands.
const SupportedMajor = 1

var versionPattern = regexp.MustCompile(`^v[0-9]+$`)

type Parser struct {
	filename   string
	tokens     []Token
	current    int
	errors     []ParseError
	versionErr *UnsupportedVersionError
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

// ParseFile parses a whole PIR-TXT document. It always returns a best-effort
// tree for tooling; callers that need the all-or-nothing contract go
// through Parse instead.
func (p *Parser) ParseFile() *ast.File {
	startToken := p.consume(MODULE, "expected 'module' keyword")
	p.consume(AT, "expected '@' before module name")

	name := p.parseQualName()
	version := p.parseVersion()

	p.consume(LEFT_BRACE, "expected '{' to start module body")

	var items []ast.ModuleItem
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		item := p.parseItem()
		if item != nil {
			items = append(items, item)
		}
	}

	endToken := p.consume(RIGHT_BRACE, "expected '}' to close module body")
	if !p.isAtEnd() {
		p.errorAtCurrent("unexpected text after module body")
	}

	return &ast.File{
		Pos:     p.makePos(startToken),
		EndPos:  p.makeEndPos(endToken),
		Name:    name,
		Version: version,
		Items:   items,
	}
}

func (p *Parser) parseQualName() ast.QualName {
	first, ok := p.consumeIdent("expected module name")
	if !ok {
		return ast.QualName{Pos: first.Pos, EndPos: first.EndPos, Parts: []string{first.Value}}
	}

	parts := []string{first.Value}
	end := first.EndPos
	for p.match(DOT) {
		part, ok := p.consumeIdent("expected name segment after '.'")
		if !ok {
			break
		}
		parts = append(parts, part.Value)
		end = part.EndPos
	}

	return ast.QualName{Pos: first.Pos, EndPos: end, Parts: parts}
}

// parseVersion reads an optional version token such as v1 or v1.2. The
// scanner splits v1.2 into an identifier, a dot, and a number, so the pieces
// get reassembled here. An unrecognized major version is recorded but does
// not stop the parse; syntactic checking of the rest still has value.
func (p *Parser) parseVersion() string {
	if !p.check(IDENTIFIER) || !versionPattern.MatchString(p.peek().Lexeme) {
		return ""
	}

	tok := p.advance()
	version := tok.Lexeme
	for p.check(DOT) && p.current+1 < len(p.tokens) && p.tokens[p.current+1].Type == NUMBER {
		p.advance()
		num := p.advance()
		version += "." + num.Lexeme
	}

	major, err := strconv.Atoi(strings.TrimPrefix(strings.SplitN(version, ".", 2)[0], "v"))
	if err != nil || major != SupportedMajor {
		p.versionErr = &UnsupportedVersionError{
			Version:  version,
			Major:    major,
			Position: tok.Position,
		}
	}
	return version
}

func (p *Parser) parseItem() ast.ModuleItem {
	switch p.peek().Type {
	case IDENTIFIER:
		return p.parseInput()
	case AT:
		return p.parseSection()
	case SLOT:
		return p.parseSlot()
	case STRING:
		return p.parseMessage()
	case RENDER:
		return p.parseRender()
	default:
		p.errorAtCurrent("expected input, section, slot, message, or render block")
		p.synchronize()
		return nil
	}
}

// parseInput parses: name : kind { attrs }
func (p *Parser) parseInput() *ast.InputDecl {
	name, ok := p.consumeIdent("expected input name")
	if !ok {
		p.synchronize()
		return nil
	}

	p.consume(COLON, "expected ':' after input name")
	kind := p.parseKind()
	attrs := p.parseAttrBlock()
	end := p.previous()

	return &ast.InputDecl{
		Pos:    name.Pos,
		EndPos: p.makeEndPos(end),
		Name:   name,
		Kind:   kind,
		Attrs:  attrs,
	}
}

// parseKind parses a scalar kind, with a parenthesized value set for enum:
// string | number | bool | enum("a", "b")
func (p *Parser) parseKind() ast.KindExpr {
	name, ok := p.consumeIdent("expected input kind")
	if !ok {
		return ast.KindExpr{Name: name}
	}

	kind := ast.KindExpr{Pos: name.Pos, EndPos: name.EndPos, Name: name}
	if p.match(LEFT_PAREN) {
		kind.Values = []ast.StringLit{}
		for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
			tok := p.consume(STRING, "expected string value in enumeration set")
			if tok.Type == ILLEGAL {
				break
			}
			kind.Values = append(kind.Values, p.makeString(tok))
			if !p.match(COMMA) {
				break
			}
		}
		end := p.consume(RIGHT_PAREN, "expected ')' to close enumeration set")
		kind.EndPos = p.makeEndPos(end)
	}
	return kind
}

// parseSection parses: @name { attrs }
func (p *Parser) parseSection() *ast.SectionDecl {
	at := p.consume(AT, "expected '@' to start section declaration")
	name, ok := p.consumeIdent("expected section name")
	if !ok {
		p.synchronize()
		return nil
	}

	attrs := p.parseAttrBlock()
	end := p.previous()

	return &ast.SectionDecl{
		Pos:    p.makePos(at),
		EndPos: p.makeEndPos(end),
		Name:   name,
		Attrs:  attrs,
	}
}

// parseSlot parses: slot name { attrs }
func (p *Parser) parseSlot() *ast.SlotDecl {
	kw := p.consume(SLOT, "expected 'slot' keyword")
	name, ok := p.consumeIdent("expected slot name")
	if !ok {
		p.synchronize()
		return nil
	}

	attrs := p.parseAttrBlock()
	end := p.previous()

	return &ast.SlotDecl{
		Pos:    p.makePos(kw),
		EndPos: p.makeEndPos(end),
		Name:   name,
		Attrs:  attrs,
	}
}

// parseMessage parses: "channel" { emit* }
func (p *Parser) parseMessage() *ast.MessageBlock {
	channel := p.consume(STRING, "expected channel string")
	p.consume(LEFT_BRACE, "expected '{' to start message body")

	var ops []ast.EmitOp
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		op := p.parseEmitOp()
		if op == nil {
			p.synchronize()
			break
		}
		ops = append(ops, op)
	}

	end := p.consume(RIGHT_BRACE, "expected '}' to close message body")

	return &ast.MessageBlock{
		Pos:     p.makePos(channel),
		EndPos:  p.makeEndPos(end),
		Channel: p.makeString(channel),
		Ops:     ops,
	}
}

func (p *Parser) parseEmitOp() ast.EmitOp {
	switch p.peek().Type {
	case LIT:
		kw := p.advance()
		text := p.consume(STRING, "expected string after 'lit'")
		if text.Type == ILLEGAL {
			return nil
		}
		return &ast.EmitLit{Pos: p.makePos(kw), EndPos: p.makeEndPos(text), Text: p.makeString(text)}
	case SEC:
		kw := p.advance()
		p.consume(AT, "expected '@' after 'sec'")
		name, ok := p.consumeIdent("expected section name after 'sec @'")
		if !ok {
			return nil
		}
		return &ast.EmitSection{Pos: p.makePos(kw), EndPos: name.EndPos, Name: name}
	case IN:
		kw := p.advance()
		name, ok := p.consumeIdent("expected input name after 'in'")
		if !ok {
			return nil
		}
		return &ast.EmitInput{Pos: p.makePos(kw), EndPos: name.EndPos, Name: name}
	case SWITCH:
		return p.parseSwitch()
	default:
		p.errorAtCurrent("expected 'lit', 'sec', 'in', or 'switch' in message body")
		return nil
	}
}

// parseSwitch parses: switch name { case "v" { emit* } ... else { emit* } }
func (p *Parser) parseSwitch() ast.EmitOp {
	kw := p.consume(SWITCH, "expected 'switch' keyword")
	input, ok := p.consumeIdent("expected input name after 'switch'")
	if !ok {
		return nil
	}

	p.consume(LEFT_BRACE, "expected '{' to start switch body")

	sw := &ast.SwitchOp{Pos: p.makePos(kw), Input: input}
	for p.check(CASE) {
		caseKw := p.advance()
		value := p.consume(STRING, "expected string value after 'case'")
		if value.Type == ILLEGAL {
			return nil
		}
		ops, endTok := p.parseOpBlock()
		sw.Cases = append(sw.Cases, ast.SwitchCase{
			Pos:    p.makePos(caseKw),
			EndPos: p.makeEndPos(endTok),
			Value:  p.makeString(value),
			Ops:    ops,
		})
	}
	if p.match(ELSE) {
		sw.HasElse = true
		sw.Else, _ = p.parseOpBlock()
	}

	end := p.consume(RIGHT_BRACE, "expected '}' to close switch body")
	sw.EndPos = p.makeEndPos(end)
	return sw
}

func (p *Parser) parseOpBlock() ([]ast.EmitOp, Token) {
	p.consume(LEFT_BRACE, "expected '{' to start emit block")
	var ops []ast.EmitOp
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		op := p.parseEmitOp()
		if op == nil {
			break
		}
		ops = append(ops, op)
	}
	end := p.consume(RIGHT_BRACE, "expected '}' to close emit block")
	return ops, end
}

// parseRender parses: render { attrs }
func (p *Parser) parseRender() *ast.RenderBlock {
	kw := p.consume(RENDER, "expected 'render' keyword")
	attrs := p.parseAttrBlock()
	end := p.previous()

	return &ast.RenderBlock{
		Pos:    p.makePos(kw),
		EndPos: p.makeEndPos(end),
		Attrs:  attrs,
	}
}

// parseAttrBlock parses { attr* } where attr is key = value or a bare flag.
// Commas between attributes are optional; newlines carry no meaning of
// their own.
func (p *Parser) parseAttrBlock() []ast.Attr {
	p.consume(LEFT_BRACE, "expected '{' to start attribute block")

	var attrs []ast.Attr
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		attr, ok := p.parseAttr()
		if !ok {
			p.synchronize()
			break
		}
		attrs = append(attrs, attr)
		p.match(COMMA)
	}

	p.consume(RIGHT_BRACE, "expected '}' to close attribute block")
	return attrs
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	key, ok := p.consumeIdent("expected attribute name")
	if !ok {
		return ast.Attr{}, false
	}

	attr := ast.Attr{Pos: key.Pos, EndPos: key.EndPos, Key: key}
	if p.match(EQUAL) {
		value, ok := p.parseValue()
		if !ok {
			return ast.Attr{}, false
		}
		attr.Value = value
		attr.EndPos = value.NodeEndPos()
	}
	return attr, true
}

func (p *Parser) parseValue() (ast.Value, bool) {
	switch p.peek().Type {
	case STRING:
		tok := p.advance()
		lit := p.makeString(tok)
		return &lit, true
	case NUMBER:
		tok := p.advance()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorAtCurrent(fmt.Sprintf("invalid number literal %q", tok.Lexeme))
			return nil, false
		}
		return &ast.NumberLit{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: f}, true
	case TRUE, FALSE:
		tok := p.advance()
		return &ast.BoolLit{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: tok.Type == TRUE}, true
	case LEFT_BRACE:
		start := p.peek()
		items := p.parseAttrBlock()
		return &ast.MapLit{Pos: p.makePos(start), EndPos: p.makeEndPos(p.previous()), Items: items}, true
	default:
		p.errorAtCurrent("expected string, number, boolean, or '{' attribute value")
		return nil, false
	}
}
