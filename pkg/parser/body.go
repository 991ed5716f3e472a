package parser

import (
	"strconv"

	"github.com/cboragen/cboragen/pkg/ast"
	"github.com/cboragen/cboragen/pkg/lex"
	"github.com/cboragen/cboragen/pkg/source"
)

func (p *Parser) parseStructType() ast.TypeExpr {
	kw := p.advance() // 'struct'

	p.expect(lex.LBrace)

	var fields []ast.Field

	for p.atBodyContinue() {
		fields = append(fields, p.parseField())
		p.expectBodySeparator()
	}

	closeSpan := p.closeBody(lex.RBrace)

	return ast.StructType{Fields: fields, Span: kw.Span.Merge(closeSpan)}
}

func (p *Parser) parseEnumType() ast.TypeExpr {
	kw := p.advance() // 'enum'

	p.expect(lex.LBrace)

	var variants []ast.EnumVariant

	for p.atBodyContinue() {
		variants = append(variants, p.parseEnumVariant())
		p.expectBodySeparator()
	}

	closeSpan := p.closeBody(lex.RBrace)

	return ast.EnumType{Variants: variants, Span: kw.Span.Merge(closeSpan)}
}

func (p *Parser) parseUnionType() ast.TypeExpr {
	kw := p.advance() // 'union'

	p.expect(lex.LBrace)

	var variants []ast.UnionVariant

	for p.atBodyContinue() {
		variants = append(variants, p.parseUnionVariant())
		p.expectBodySeparator()
	}

	closeSpan := p.closeBody(lex.RBrace)

	return ast.UnionType{Variants: variants, Span: kw.Span.Merge(closeSpan)}
}

// parseField parses `doc? integer (identifier|type_identifier|integer) ':' TypeExpr`.
func (p *Parser) parseField() ast.Field {
	doc, hasDoc := p.tryParseDocComment()
	p.skipNewlines()

	rankTok, _ := p.expect(lex.IntLiteral)
	rank, _ := parseUint64(p, rankTok)

	nameTok := p.expectFieldName()

	p.expect(lex.Colon)

	ty := p.parseTypeExpr()

	return ast.Field{
		Doc:      docOption(doc, hasDoc),
		Rank:     rank,
		Name:     p.text(nameTok),
		Type:     ty,
		Span:     rankTok.Span.Merge(ty.NodeSpan()),
		NameSpan: nameTok.Span,
	}
}

// parseEnumVariant parses `doc? integer (identifier|type_identifier)`.
func (p *Parser) parseEnumVariant() ast.EnumVariant {
	doc, hasDoc := p.tryParseDocComment()
	p.skipNewlines()

	tagTok, _ := p.expect(lex.IntLiteral)
	tag, _ := parseUint64(p, tagTok)

	nameTok := p.expectFieldName()

	return ast.EnumVariant{
		Doc:  docOption(doc, hasDoc),
		Tag:  tag,
		Name: p.text(nameTok),
		Span: tagTok.Span.Merge(nameTok.Span),
	}
}

// parseUnionVariant parses `doc? integer (identifier|type_identifier) (':' TypeExpr)?`.
func (p *Parser) parseUnionVariant() ast.UnionVariant {
	doc, hasDoc := p.tryParseDocComment()
	p.skipNewlines()

	tagTok, _ := p.expect(lex.IntLiteral)
	tag, _ := parseUint64(p, tagTok)

	nameTok := p.expectFieldName()

	variant := ast.UnionVariant{
		Doc:  docOption(doc, hasDoc),
		Tag:  tag,
		Name: p.text(nameTok),
		Span: tagTok.Span.Merge(nameTok.Span),
	}

	if _, ok := p.match(lex.Colon); ok {
		payload := p.parseTypeExpr()
		variant.Payload = payload
		variant.Span = tagTok.Span.Merge(payload.NodeSpan())
	}

	return variant
}

// expectFieldName accepts an identifier, type_identifier, or integer as a
// field/variant name, matching the grammar's `(identifier|type_identifier|integer)`
// alternative. On mismatch it emits a diagnostic and returns the current
// token without consuming it, so the caller's span arithmetic still works.
func (p *Parser) expectFieldName() lex.Token {
	switch {
	case p.at(lex.Identifier), p.at(lex.TypeIdentifier), p.at(lex.IntLiteral):
		return p.advance()
	default:
		p.errorf(p.cur().Span, "expected a field or variant name, found %s", p.cur().Tag)

		return p.cur()
	}
}

// atBodyContinue reports whether the body loop should parse another
// field/variant: skips leading separators first, then checks for the
// closing brace or eof.
func (p *Parser) atBodyContinue() bool {
	p.skipBodySeparators()

	return !p.at(lex.RBrace) && !p.at(lex.EOF)
}

// skipBodySeparators consumes any run of commas and newlines, matching
// `sep ::= (',' | newline)+` used in any mix.
func (p *Parser) skipBodySeparators() {
	for p.at(lex.Comma) || p.at(lex.Newline) {
		p.advance()
	}
}

// expectBodySeparator requires at least one separator (or the closing brace)
// after a field/variant; a miss is a diagnostic and triggers body-level
// panic-mode recovery to the next ',', newline, or '}'.
func (p *Parser) expectBodySeparator() {
	if p.at(lex.Comma) || p.at(lex.Newline) || p.at(lex.RBrace) || p.at(lex.EOF) {
		return
	}

	p.errorf(p.cur().Span, "expected ',' or a newline between fields, found %s", p.cur().Tag)
	p.enterBodyPanic()
}

// enterBodyPanic advances until the next ',', newline, '}', or eof.
func (p *Parser) enterBodyPanic() {
	p.panicking = true

	for {
		tag := p.cur().Tag
		if tag == lex.Comma || tag == lex.Newline || tag == lex.RBrace || tag == lex.EOF {
			p.panicking = false

			return
		}

		p.advance()
	}
}

// closeBody expects the closing delimiter, recovering to eof on miss, and
// returns its span (or the current token's span if it was never found).
func (p *Parser) closeBody(tag lex.Tag) source.Span {
	tok, ok := p.expect(tag)
	if ok {
		return tok.Span
	}

	return p.cur().Span
}

// parseUint64 parses the decimal digits covered by tok into a uint64. On
// overflow it emits a diagnostic per §7's "invalid field rank / variant tag"
// category and returns 0.
func parseUint64(p *Parser, tok lex.Token) (uint64, bool) {
	text := p.text(tok)

	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		p.errorf(tok.Span, "integer literal %q is out of range for a 64-bit unsigned value", text)

		return 0, false
	}

	return value, true
}
