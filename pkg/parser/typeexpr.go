package parser

import (
	"github.com/cboragen/cboragen/pkg/ast"
	"github.com/cboragen/cboragen/pkg/lex"
)

// parseTypeExpr parses one TypeExpr production. On failure it emits a
// diagnostic and returns a BoolType placeholder spanning the offending token
// (which is not consumed) so callers can
// keep building a best-effort AST without special-casing a nil TypeExpr.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.cur()

	switch tok.Tag {
	case lex.KwBool:
		p.advance()
		return ast.BoolType{Span: tok.Span}
	case lex.KwString:
		p.advance()
		return ast.StringType{Span: tok.Span}
	case lex.KwBytes:
		p.advance()
		return ast.BytesType{Span: tok.Span}
	case lex.KwU8, lex.KwU16, lex.KwU32, lex.KwU64,
		lex.KwI8, lex.KwI16, lex.KwI32, lex.KwI64,
		lex.KwUvarint, lex.KwIvarint:
		p.advance()
		return ast.IntType{Kind: intKindOf(tok.Tag), Span: tok.Span}
	case lex.KwF16, lex.KwF32, lex.KwF64:
		p.advance()
		return ast.FloatType{Kind: floatKindOf(tok.Tag), Span: tok.Span}
	case lex.Question:
		return p.parseOptionType()
	case lex.LBracket:
		return p.parseArrayType()
	case lex.KwStruct:
		return p.parseStructType()
	case lex.KwEnum:
		return p.parseEnumType()
	case lex.KwUnion:
		return p.parseUnionType()
	case lex.TypeIdentifier:
		p.advance()
		return ast.NamedType{Name: p.text(tok), Span: tok.Span}
	case lex.Identifier:
		return p.parseQualifiedType()
	default:
		p.errorf(tok.Span, "expected a type expression, found %s", tok.Tag)

		return ast.BoolType{Span: tok.Span}
	}
}

func intKindOf(tag lex.Tag) ast.IntKind {
	switch tag {
	case lex.KwU8:
		return ast.U8
	case lex.KwU16:
		return ast.U16
	case lex.KwU32:
		return ast.U32
	case lex.KwU64:
		return ast.U64
	case lex.KwI8:
		return ast.I8
	case lex.KwI16:
		return ast.I16
	case lex.KwI32:
		return ast.I32
	case lex.KwI64:
		return ast.I64
	case lex.KwUvarint:
		return ast.Uvarint
	default:
		return ast.Ivarint
	}
}

func floatKindOf(tag lex.Tag) ast.FloatKind {
	switch tag {
	case lex.KwF16:
		return ast.F16
	case lex.KwF32:
		return ast.F32
	default:
		return ast.F64
	}
}

func (p *Parser) parseOptionType() ast.TypeExpr {
	q := p.advance() // '?'
	child := p.parseTypeExpr()

	return ast.OptionType{Child: child, Span: q.Span.Merge(child.NodeSpan())}
}

func (p *Parser) parseQualifiedType() ast.TypeExpr {
	nsTok := p.advance() // identifier

	if _, ok := p.expect(lex.Dot); !ok {
		return ast.QualifiedType{Namespace: p.text(nsTok), Span: nsTok.Span}
	}

	nameTok, ok := p.expect(lex.TypeIdentifier)
	if !ok {
		return ast.QualifiedType{Namespace: p.text(nsTok), Span: nsTok.Span}
	}

	return ast.QualifiedType{
		Namespace: p.text(nsTok),
		Name:      p.text(nameTok),
		Span:      nsTok.Span.Merge(nameTok.Span),
	}
}

// parseArrayType parses `[]T`, `[N]T`, and `[.name]T`.
func (p *Parser) parseArrayType() ast.TypeExpr {
	lbracket := p.advance() // '['

	switch {
	case p.at(lex.RBracket):
		p.advance()

		element := p.parseTypeExpr()

		return ast.ArrayType{Kind: ast.ArrayVariable, Element: element, Span: lbracket.Span.Merge(element.NodeSpan())}
	case p.at(lex.IntLiteral):
		lenTok := p.advance()
		length, ok := parseUint64(p, lenTok)

		if _, ok2 := p.expect(lex.RBracket); !ok2 {
			ok = false
		}

		element := p.parseTypeExpr()

		if !ok {
			length = 0
		}

		return ast.ArrayType{Kind: ast.ArrayFixed, Length: length, Element: element, Span: lbracket.Span.Merge(element.NodeSpan())}
	case p.at(lex.Dot):
		p.advance()

		var field string

		if p.at(lex.Identifier) || p.at(lex.IntLiteral) {
			field = p.text(p.advance())
		} else {
			p.errorf(p.cur().Span, "expected a field name or number after '.', found %s", p.cur().Tag)
		}

		p.expect(lex.RBracket)

		element := p.parseTypeExpr()

		return ast.ArrayType{Kind: ast.ArrayExternalLength, Field: field, Element: element, Span: lbracket.Span.Merge(element.NodeSpan())}
	default:
		p.errorf(p.cur().Span, "malformed array specifier: expected ']', an integer, or '.name', found %s", p.cur().Tag)

		element := p.parseTypeExpr()

		return ast.ArrayType{Kind: ast.ArrayVariable, Element: element, Span: lbracket.Span.Merge(element.NodeSpan())}
	}
}
