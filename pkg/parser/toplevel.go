package parser

import (
	"github.com/cboragen/cboragen/pkg/ast"
	"github.com/cboragen/cboragen/pkg/lex"
)

// parseSchema drives the top-level loop: Schema ::= (Import | TypeDef)*.
func (p *Parser) parseSchema() ast.Schema {
	var schema ast.Schema

	for {
		p.skipNewlines()

		if p.at(lex.EOF) {
			return schema
		}

		doc, hasDoc := p.tryParseDocComment()
		p.skipNewlines()

		switch {
		case p.at(lex.Identifier) && p.peek2().Tag == lex.Equals && !hasDoc:
			if imp, ok := p.parseImport(); ok {
				schema.Imports = append(schema.Imports, imp)
			} else {
				p.enterTopLevelPanic()
			}
		case p.at(lex.TypeIdentifier):
			def := p.parseDefinition(doc, hasDoc)
			schema.Definitions = append(schema.Definitions, def)
		default:
			p.errorf(p.cur().Span, "expected a type definition or import, found %s", p.cur().Tag)
			p.enterTopLevelPanic()
		}

		p.clearPanic()
	}
}

// tryParseDocComment gathers zero or more consecutive `///`-lines, separated
// by single Newline tokens, into one doc string. A single line is returned
// verbatim (zero-copy in spirit, even though this Go port is GC-managed
// rather than arena-managed); multiple lines are newline-joined.
func (p *Parser) tryParseDocComment() (string, bool) {
	if !p.at(lex.DocComment) {
		return "", false
	}

	var lines []string

	for p.at(lex.DocComment) {
		tok := p.advance()
		lines = append(lines, lex.DocCommentText(tok, p.file.Contents()))

		// A single Newline between consecutive doc lines continues the
		// comment; anything else ends it.
		if p.at(lex.Newline) && p.peek2().Tag == lex.DocComment {
			p.advance()

			continue
		}

		break
	}

	if len(lines) == 1 {
		return lines[0], true
	}

	joined := ""
	for i, l := range lines {
		if i > 0 {
			joined += "\n"
		}

		joined += l
	}

	return joined, true
}

// parseImport parses `identifier '=' '@' 'import' '(' string_literal ')'`.
// Called only once the caller has confirmed (via peek2) that an '=' follows
// the leading identifier.
func (p *Parser) parseImport() (ast.Import, bool) {
	nameTok := p.advance() // identifier
	startSpan := nameTok.Span

	if _, ok := p.expect(lex.Equals); !ok {
		return ast.Import{}, false
	}

	if _, ok := p.expect(lex.At); !ok {
		return ast.Import{}, false
	}

	if _, ok := p.expect(lex.KwImport); !ok {
		return ast.Import{}, false
	}

	if _, ok := p.expect(lex.LParen); !ok {
		return ast.Import{}, false
	}

	pathTok, ok := p.expect(lex.StringLiteral)
	if !ok {
		return ast.Import{}, false
	}

	endTok, ok := p.expect(lex.RParen)
	if !ok {
		return ast.Import{}, false
	}

	return ast.Import{
		Namespace: p.text(nameTok),
		Path:      unquote(p.text(pathTok)),
		Span:      startSpan.Merge(endTok.Span),
	}, true
}

// parseDefinition parses `doc? type_identifier '=' TypeExpr`, where doc was
// gathered by the caller (tryParseDocComment).
func (p *Parser) parseDefinition(doc string, hasDoc bool) ast.Definition {
	nameTok, _ := p.expect(lex.TypeIdentifier)
	startSpan := nameTok.Span

	if _, ok := p.expect(lex.Equals); !ok {
		p.enterTopLevelPanic()

		return ast.Definition{Doc: docOption(doc, hasDoc), Name: p.text(nameTok), NameSpan: startSpan, Span: startSpan}
	}

	ty := p.parseTypeExpr()

	return ast.Definition{
		Doc:      docOption(doc, hasDoc),
		Name:     p.text(nameTok),
		Type:     ty,
		Span:     startSpan.Merge(ty.NodeSpan()),
		NameSpan: startSpan,
	}
}

func docOption(doc string, has bool) ast.Doc {
	if has {
		return ast.NewDoc(doc)
	}

	return ast.NoDoc()
}

// unquote strips the surrounding double quotes and resolves backslash
// escapes of a lexed string literal. Paths are byte-literal otherwise: no
// URL-decoding occurs.
func unquote(raw string) string {
	if len(raw) < 2 || raw[0] != '"' {
		return raw
	}

	body := raw[1:]
	if len(body) > 0 && body[len(body)-1] == '"' {
		body = body[:len(body)-1]
	}

	var out []byte

	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++

			switch body[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, body[i])
			}

			continue
		}

		out = append(out, body[i])
	}

	return string(out)
}

// enterTopLevelPanic records one diagnostic has already been raised for this
// episode (the caller is expected to have called errorf already), advances
// past the offending token, and skips forward to the next synchronization
// point: a type_identifier, doc_comment, or identifier immediately following
// a newline, or eof.
func (p *Parser) enterTopLevelPanic() {
	p.panicking = true
	p.advance()

	afterNewline := false

	for {
		tok := p.cur()

		if tok.Tag == lex.EOF {
			return
		}

		if tok.Tag == lex.Newline {
			p.advance()
			afterNewline = true

			continue
		}

		if afterNewline && (tok.Tag == lex.TypeIdentifier || tok.Tag == lex.DocComment || tok.Tag == lex.Identifier) {
			return
		}

		p.advance()
		afterNewline = false
	}
}

// clearPanic clears panic-mode suppression after a recovery episode.
func (p *Parser) clearPanic() {
	p.panicking = false
}
